package produto

import (
	"time"

	"github.com/shopspring/decimal"
)

type Produto struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Codigo       string          `gorm:"size:40;uniqueIndex;not null" json:"codigo"`
	Descricao    string          `gorm:"size:255;not null" json:"descricao"`
	Unidade      string          `gorm:"size:10;not null" json:"unidade"`
	PrecoCusto   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"precoCusto"`
	PrecoVenda   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"precoVenda"`
	Estoque      float64         `gorm:"not null" json:"estoque"`
	FornecedorID *uint           `gorm:"index" json:"fornecedorId"`
	Ativo        bool            `gorm:"not null;index" json:"ativo"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// MargemPercentual é o markup do preço de venda sobre o custo
func (p Produto) MargemPercentual() decimal.Decimal {
	if p.PrecoCusto.IsZero() {
		return decimal.Zero
	}
	return p.PrecoVenda.Sub(p.PrecoCusto).Div(p.PrecoCusto).Mul(decimal.NewFromInt(100)).Round(2)
}

// ProdutoRequest é usado em POST /produtos e PUT /produtos/{id}
type ProdutoRequest struct {
	Codigo       string          `json:"codigo" validate:"required,max=40"`
	Descricao    string          `json:"descricao" validate:"required"`
	Unidade      string          `json:"unidade"`
	PrecoCusto   decimal.Decimal `json:"precoCusto"`
	PrecoVenda   decimal.Decimal `json:"precoVenda"`
	Estoque      float64         `json:"estoque" validate:"gte=0"`
	FornecedorID *uint           `json:"fornecedorId"`
}
