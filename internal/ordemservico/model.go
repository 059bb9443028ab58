package ordemservico

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/shopspring/decimal"
)

const (
	StatusAberta          = "Aberta"
	StatusEmAndamento     = "EmAndamento"
	StatusAguardandoPecas = "AguardandoPecas"
	StatusConcluida       = "Concluida"
	StatusCancelada       = "Cancelada"

	ItemServico = "servico"
	ItemPeca    = "peca"
)

var (
	ErrStatusDesconhecido = errors.New("status desconhecido")
	ErrTransicaoInvalida  = errors.New("mudança de status não permitida")
	ErrFinalizada         = errors.New("ordem de serviço concluída ou cancelada não pode ser alterada")
)

var transicoes = map[string][]string{
	StatusAberta:          {StatusEmAndamento, StatusAguardandoPecas, StatusCancelada},
	StatusEmAndamento:     {StatusAguardandoPecas, StatusConcluida, StatusCancelada},
	StatusAguardandoPecas: {StatusEmAndamento, StatusCancelada},
}

// OrdemServico é o documento de atendimento técnico a um cliente
type OrdemServico struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	Numero             string             `gorm:"size:20;uniqueIndex;not null" json:"numero"`
	ClienteID          uint               `gorm:"not null;index" json:"clienteId"`
	Cliente            *cliente.Cliente   `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Equipamento        string             `gorm:"size:200" json:"equipamento"`
	DefeitoRelatado    string             `gorm:"type:text" json:"defeitoRelatado"`
	Diagnostico        string             `gorm:"type:text" json:"diagnostico"`
	Tecnico            string             `gorm:"size:120" json:"tecnico"`
	Status             string             `gorm:"size:20;not null;index" json:"status"`
	DataAbertura       time.Time          `gorm:"not null" json:"dataAbertura"`
	DataConclusao      *time.Time         `json:"dataConclusao"`
	FormaPagamento     string             `gorm:"size:40" json:"formaPagamento"`
	CondicoesPagamento string             `gorm:"size:255" json:"condicoesPagamento"`
	Desconto           decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"desconto"`
	ValorServicos      decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"valorServicos"`
	ValorPecas         decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"valorPecas"`
	ValorTotal         decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"valorTotal"`
	PropostaID         *uint              `gorm:"index" json:"propostaId"`
	Observacoes        string             `gorm:"type:text" json:"observacoes"`
	Ativo              bool               `gorm:"not null;index" json:"ativo"`
	Itens              []ItemOrdemServico `gorm:"foreignKey:OrdemServicoID;constraint:OnDelete:CASCADE" json:"itens"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func (OrdemServico) TableName() string { return "ordens_servico" }

type ItemOrdemServico struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrdemServicoID uint            `gorm:"not null;index" json:"ordemServicoId"`
	Tipo           string          `gorm:"size:10;not null" json:"tipo"`
	ProdutoID      *uint           `gorm:"index" json:"produtoId"`
	Descricao      string          `gorm:"size:255;not null" json:"descricao"`
	Quantidade     decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantidade"`
	ValorUnitario  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valorUnitario"`
	ValorTotal     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valorTotal"`
}

func (ItemOrdemServico) TableName() string { return "itens_ordem_servico" }

// CalcularTotais recalcula itens, subtotais por tipo e o total com desconto (nunca negativo)
func (o *OrdemServico) CalcularTotais() {
	o.ValorServicos = decimal.Zero
	o.ValorPecas = decimal.Zero
	for i := range o.Itens {
		it := &o.Itens[i]
		it.ValorTotal = it.Quantidade.Mul(it.ValorUnitario).Round(2)
		if it.Tipo == ItemPeca {
			o.ValorPecas = o.ValorPecas.Add(it.ValorTotal)
		} else {
			o.ValorServicos = o.ValorServicos.Add(it.ValorTotal)
		}
	}
	o.Desconto = o.Desconto.Round(2)
	o.ValorTotal = o.ValorServicos.Add(o.ValorPecas).Sub(o.Desconto)
	if o.ValorTotal.IsNegative() {
		o.ValorTotal = decimal.Zero
	}
}

func StatusValido(s string) bool {
	switch s {
	case StatusAberta, StatusEmAndamento, StatusAguardandoPecas, StatusConcluida, StatusCancelada:
		return true
	}
	return false
}

// Finalizada indica status terminal
func (o *OrdemServico) Finalizada() bool {
	return o.Status == StatusConcluida || o.Status == StatusCancelada
}

// MudarStatus aplica a transição; concluir registra a data de conclusão
func (o *OrdemServico) MudarStatus(novo string, agora time.Time) error {
	if !StatusValido(novo) {
		return fmt.Errorf("%w: %s", ErrStatusDesconhecido, novo)
	}
	if !slices.Contains(transicoes[o.Status], novo) {
		return fmt.Errorf("%w: %s -> %s", ErrTransicaoInvalida, o.Status, novo)
	}
	o.Status = novo
	if novo == StatusConcluida {
		o.DataConclusao = &agora
	}
	return nil
}
