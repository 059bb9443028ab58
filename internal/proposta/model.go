package proposta

import (
	"errors"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/shopspring/decimal"
)

const (
	StatusRascunho   = "Rascunho"
	StatusEnviada    = "Enviada"
	StatusAprovada   = "Aprovada"
	StatusRecusada   = "Recusada"
	StatusConvertida = "Convertida"
)

var (
	ErrStatusInvalido = errors.New("operação não permitida para o status atual da proposta")
	ErrExpirada       = errors.New("proposta com validade vencida não pode ser aprovada")
	ErrSemItens       = errors.New("proposta sem itens não pode ser enviada")
	ErrJaConvertida   = errors.New("proposta já gerou uma ordem de serviço")
)

// PropostaComercial é o orçamento enviado ao cliente, com itens e plano de pagamento
type PropostaComercial struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	Numero             string            `gorm:"size:20;uniqueIndex;not null" json:"numero"`
	ClienteID          uint              `gorm:"not null;index" json:"clienteId"`
	Cliente            *cliente.Cliente  `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Titulo             string            `gorm:"size:200;not null" json:"titulo"`
	Descricao          string            `gorm:"type:text" json:"descricao"`
	Validade           time.Time         `gorm:"not null" json:"validade"`
	Status             string            `gorm:"size:20;not null;index" json:"status"`
	ModoPagamento      string            `gorm:"size:30;not null" json:"modoPagamento"`
	Entrada            decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"entrada"`
	QtdParcelas        int               `gorm:"not null" json:"qtdParcelas"`
	PrimeiroVencimento time.Time         `gorm:"not null" json:"primeiroVencimento"`
	Desconto           decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"desconto"`
	ValorTotal         decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"valorTotal"`
	Observacoes        string            `gorm:"type:text" json:"observacoes"`
	DataEnvio          *time.Time        `json:"dataEnvio"`
	DataAprovacao      *time.Time        `json:"dataAprovacao"`
	OrdemServicoID     *uint             `gorm:"index" json:"ordemServicoId"`
	ProjetoSolarID     *uint             `gorm:"index" json:"projetoSolarId"`
	Ativo              bool              `gorm:"not null;index" json:"ativo"`
	Itens              []ItemProposta    `gorm:"foreignKey:PropostaID;constraint:OnDelete:CASCADE" json:"itens"`
	Parcelas           []ParcelaProposta `gorm:"foreignKey:PropostaID;constraint:OnDelete:CASCADE" json:"parcelas"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

func (PropostaComercial) TableName() string { return "propostas" }

type ItemProposta struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PropostaID    uint            `gorm:"not null;index" json:"propostaId"`
	ProdutoID     *uint           `gorm:"index" json:"produtoId"`
	Descricao     string          `gorm:"size:255;not null" json:"descricao"`
	Quantidade    decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantidade"`
	ValorUnitario decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valorUnitario"`
	ValorTotal    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valorTotal"`
}

func (ItemProposta) TableName() string { return "itens_proposta" }

type ParcelaProposta struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	PropostaID     uint            `gorm:"not null;index" json:"propostaId"`
	Numero         int             `gorm:"not null" json:"numero"`
	Valor          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	DataVencimento time.Time       `gorm:"not null" json:"dataVencimento"`
	Status         string          `gorm:"size:20;not null" json:"status"`
}

func (ParcelaProposta) TableName() string { return "parcelas_proposta" }

// CalcularTotais recalcula os itens, o total com desconto e regenera as parcelas
func (p *PropostaComercial) CalcularTotais() error {
	total := decimal.Zero
	for i := range p.Itens {
		it := &p.Itens[i]
		it.ValorTotal = it.Quantidade.Mul(it.ValorUnitario).Round(2)
		total = total.Add(it.ValorTotal)
	}
	p.Desconto = p.Desconto.Round(2)
	p.ValorTotal = total.Sub(p.Desconto)
	if p.ValorTotal.IsNegative() {
		p.ValorTotal = decimal.Zero
	}

	parcelas, err := GerarParcelas(Plano{
		Modo:               p.ModoPagamento,
		Total:              p.ValorTotal,
		Entrada:            p.Entrada,
		QtdParcelas:        p.QtdParcelas,
		PrimeiroVencimento: p.PrimeiroVencimento,
	})
	if err != nil {
		return err
	}
	for i := range parcelas {
		parcelas[i].PropostaID = p.ID
	}
	p.Parcelas = parcelas
	return nil
}

func (p *PropostaComercial) Editavel() bool {
	return p.Status == StatusRascunho
}

func (p *PropostaComercial) Enviar(agora time.Time) error {
	if p.Status != StatusRascunho {
		return ErrStatusInvalido
	}
	if len(p.Itens) == 0 {
		return ErrSemItens
	}
	p.Status = StatusEnviada
	p.DataEnvio = &agora
	return nil
}

// Aprovar exige proposta enviada e dentro da validade (hoje truncado ao dia)
func (p *PropostaComercial) Aprovar(agora, hoje time.Time) error {
	if p.Status != StatusEnviada {
		return ErrStatusInvalido
	}
	if p.Validade.Before(hoje) {
		return ErrExpirada
	}
	p.Status = StatusAprovada
	p.DataAprovacao = &agora
	return nil
}

func (p *PropostaComercial) Recusar() error {
	if p.Status != StatusEnviada {
		return ErrStatusInvalido
	}
	p.Status = StatusRecusada
	return nil
}

// PodeConverter indica se a proposta pode gerar uma ordem de serviço
func (p *PropostaComercial) PodeConverter() error {
	if p.OrdemServicoID != nil {
		return ErrJaConvertida
	}
	if p.Status != StatusAprovada {
		return ErrStatusInvalido
	}
	return nil
}

func (p *PropostaComercial) Converter(ordemServicoID uint) error {
	if err := p.PodeConverter(); err != nil {
		return err
	}
	p.Status = StatusConvertida
	p.OrdemServicoID = &ordemServicoID
	return nil
}
