package ordemservico

import (
	"errors"
	"strings"

	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	Tipo          string          `json:"tipo" validate:"required,oneof=servico peca"`
	ProdutoID     *uint           `json:"produtoId"`
	Descricao     string          `json:"descricao" validate:"required"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valorUnitario"`
}

// OrdemServicoRequest é usado em POST /ordens-servico e PUT /ordens-servico/{id}
type OrdemServicoRequest struct {
	ClienteID          uint            `json:"clienteId" validate:"required"`
	Equipamento        string          `json:"equipamento"`
	DefeitoRelatado    string          `json:"defeitoRelatado"`
	Diagnostico        string          `json:"diagnostico"`
	Tecnico            string          `json:"tecnico"`
	DataAbertura       utils.Data      `json:"dataAbertura"`
	FormaPagamento     string          `json:"formaPagamento"`
	CondicoesPagamento string          `json:"condicoesPagamento"`
	Desconto           decimal.Decimal `json:"desconto"`
	Observacoes        string          `json:"observacoes"`
	Itens              []ItemRequest   `json:"itens" validate:"dive"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrdemServicoDetalhe é a resposta de GET /ordens-servico/{id}
type OrdemServicoDetalhe struct {
	*OrdemServico
	Comentarios []comentario.ComentarioDTO `json:"comentarios"`
}

func (req *OrdemServicoRequest) conferir() error {
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

func (req *OrdemServicoRequest) aplicar(o *OrdemServico) {
	o.ClienteID = req.ClienteID
	o.Equipamento = strings.TrimSpace(req.Equipamento)
	o.DefeitoRelatado = req.DefeitoRelatado
	o.Diagnostico = req.Diagnostico
	o.Tecnico = strings.TrimSpace(req.Tecnico)
	if !req.DataAbertura.IsZero() {
		o.DataAbertura = req.DataAbertura.Time
	}
	o.FormaPagamento = req.FormaPagamento
	o.CondicoesPagamento = req.CondicoesPagamento
	o.Desconto = req.Desconto
	o.Observacoes = req.Observacoes

	o.Itens = make([]ItemOrdemServico, 0, len(req.Itens))
	for _, it := range req.Itens {
		o.Itens = append(o.Itens, ItemOrdemServico{
			OrdemServicoID: o.ID,
			Tipo:           it.Tipo,
			ProdutoID:      it.ProdutoID,
			Descricao:      strings.TrimSpace(it.Descricao),
			Quantidade:     it.Quantidade,
			ValorUnitario:  it.ValorUnitario.Round(2),
		})
	}
	o.CalcularTotais()
}
