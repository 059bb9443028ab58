package proposta

import (
	"errors"
	"strings"
	"time"

	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	ProdutoID     *uint           `json:"produtoId"`
	Descricao     string          `json:"descricao" validate:"required"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valorUnitario"`
}

// PropostaRequest é usado em POST /propostas e PUT /propostas/{id}.
// Validade e primeiro vencimento vazios usam os padrões da empresa.
type PropostaRequest struct {
	ClienteID          uint            `json:"clienteId" validate:"required"`
	Titulo             string          `json:"titulo" validate:"required"`
	Descricao          string          `json:"descricao"`
	Validade           utils.Data      `json:"validade"`
	ModoPagamento      string          `json:"modoPagamento" validate:"required,oneof=avista entradaEParcelas parcelasIguais dividirEmDuas"`
	Entrada            decimal.Decimal `json:"entrada"`
	QtdParcelas        int             `json:"qtdParcelas" validate:"gte=0,lte=120"`
	PrimeiroVencimento utils.Data      `json:"primeiroVencimento"`
	Desconto           decimal.Decimal `json:"desconto"`
	Observacoes        string          `json:"observacoes"`
	ProjetoSolarID     *uint           `json:"projetoSolarId"`
	Itens              []ItemRequest   `json:"itens" validate:"dive"`
}

type PropostaDetalhe struct {
	*PropostaComercial
	Comentarios []comentario.ComentarioDTO `json:"comentarios"`
}

func (req *PropostaRequest) conferir() error {
	if req.Desconto.IsNegative() {
		return errors.New("desconto não pode ser negativo")
	}
	for _, it := range req.Itens {
		if !it.Quantidade.IsPositive() {
			return errors.New("quantidade dos itens deve ser maior que zero")
		}
		if it.ValorUnitario.IsNegative() {
			return errors.New("valor unitário não pode ser negativo")
		}
	}
	return nil
}

// aplicar copia o pedido para p; hoje e diasValidade completam as datas não informadas
func (req *PropostaRequest) aplicar(p *PropostaComercial, hoje time.Time, diasValidade int) {
	p.ClienteID = req.ClienteID
	p.Titulo = strings.TrimSpace(req.Titulo)
	p.Descricao = req.Descricao
	p.Validade = req.Validade.Time
	if p.Validade.IsZero() {
		p.Validade = hoje.AddDate(0, 0, diasValidade)
	}
	p.ModoPagamento = req.ModoPagamento
	p.Entrada = req.Entrada
	p.QtdParcelas = req.QtdParcelas
	p.PrimeiroVencimento = req.PrimeiroVencimento.Time
	if p.PrimeiroVencimento.IsZero() {
		p.PrimeiroVencimento = hoje
	}
	p.Desconto = req.Desconto
	p.Observacoes = req.Observacoes
	p.ProjetoSolarID = req.ProjetoSolarID

	p.Itens = make([]ItemProposta, 0, len(req.Itens))
	for _, it := range req.Itens {
		p.Itens = append(p.Itens, ItemProposta{
			PropostaID:    p.ID,
			ProdutoID:     it.ProdutoID,
			Descricao:     strings.TrimSpace(it.Descricao),
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario.Round(2),
		})
	}
}
