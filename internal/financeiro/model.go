package financeiro

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TipoReceita = "Receita"
	TipoDespesa = "Despesa"

	StatusPendente  = "Pendente"
	StatusPago      = "Pago"
	StatusCancelado = "Cancelado"
)

// ErrStatusInvalido indica transição não permitida para o lançamento
var ErrStatusInvalido = errors.New("operação não permitida para o status atual do lançamento")

type LancamentoFinanceiro struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Tipo           string          `gorm:"size:10;not null;index" json:"tipo"`
	Categoria      string          `gorm:"size:60" json:"categoria"`
	Descricao      string          `gorm:"size:255;not null" json:"descricao"`
	Valor          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	DataVencimento time.Time       `gorm:"not null;index" json:"dataVencimento"`
	DataPagamento  *time.Time      `json:"dataPagamento"`
	Status         string          `gorm:"size:12;not null;index" json:"status"`
	FormaPagamento string          `gorm:"size:40" json:"formaPagamento"`
	ClienteID      *uint           `gorm:"index" json:"clienteId"`
	FornecedorID   *uint           `gorm:"index" json:"fornecedorId"`
	OrdemServicoID *uint           `gorm:"index" json:"ordemServicoId"`
	PropostaID     *uint           `gorm:"index" json:"propostaId"`
	Observacoes    string          `gorm:"type:text" json:"observacoes"`
	Ativo          bool            `gorm:"not null;index" json:"ativo"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (LancamentoFinanceiro) TableName() string { return "lancamentos_financeiros" }

// Vencido indica lançamento pendente com vencimento anterior a hoje
func (l LancamentoFinanceiro) Vencido(hoje time.Time) bool {
	return l.Status == StatusPendente && l.DataVencimento.Before(hoje)
}

// Origem liga um lançamento gerado automaticamente ao documento que o originou
type Origem struct {
	ClienteID      *uint
	OrdemServicoID *uint
	PropostaID     *uint
}

// NovaReceitaPendente monta a receita gerada ao concluir uma OS ou aprovar uma proposta
func NovaReceitaPendente(categoria, descricao string, valor decimal.Decimal, vencimento time.Time, o Origem) LancamentoFinanceiro {
	return LancamentoFinanceiro{
		Tipo:           TipoReceita,
		Categoria:      categoria,
		Descricao:      descricao,
		Valor:          valor.Round(2),
		DataVencimento: vencimento,
		Status:         StatusPendente,
		ClienteID:      o.ClienteID,
		OrdemServicoID: o.OrdemServicoID,
		PropostaID:     o.PropostaID,
		Ativo:          true,
	}
}

// Pagar muda Pendente -> Pago
func (l *LancamentoFinanceiro) Pagar(data time.Time, forma string) error {
	if l.Status != StatusPendente {
		return ErrStatusInvalido
	}
	l.Status = StatusPago
	l.DataPagamento = &data
	if forma != "" {
		l.FormaPagamento = forma
	}
	return nil
}

// Cancelar muda Pendente -> Cancelado
func (l *LancamentoFinanceiro) Cancelar() error {
	if l.Status != StatusPendente {
		return ErrStatusInvalido
	}
	l.Status = StatusCancelado
	return nil
}
