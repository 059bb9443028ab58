package financeiro

import (
	"time"

	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/shopspring/decimal"
)

// LancamentoRequest é usado em POST /financeiro/lancamentos e PUT /financeiro/lancamentos/{id}
type LancamentoRequest struct {
	Tipo           string          `json:"tipo" validate:"required,oneof=Receita Despesa"`
	Categoria      string          `json:"categoria"`
	Descricao      string          `json:"descricao" validate:"required"`
	Valor          decimal.Decimal `json:"valor"`
	DataVencimento utils.Data      `json:"dataVencimento"`
	FormaPagamento string          `json:"formaPagamento"`
	ClienteID      *uint           `json:"clienteId"`
	FornecedorID   *uint           `json:"fornecedorId"`
	Observacoes    string          `json:"observacoes"`
}

func (req *LancamentoRequest) aplicar(l *LancamentoFinanceiro) {
	l.Tipo = req.Tipo
	l.Categoria = req.Categoria
	l.Descricao = req.Descricao
	l.Valor = req.Valor.Round(2)
	l.DataVencimento = req.DataVencimento.Time
	l.FormaPagamento = req.FormaPagamento
	l.ClienteID = req.ClienteID
	l.FornecedorID = req.FornecedorID
	l.Observacoes = req.Observacoes
}

// PagarRequest: sem data usa hoje
type PagarRequest struct {
	DataPagamento  *utils.Data `json:"dataPagamento"`
	FormaPagamento string      `json:"formaPagamento"`
}

type ResumoDTO struct {
	De                 *time.Time      `json:"de,omitempty"`
	Ate                *time.Time      `json:"ate,omitempty"`
	ReceitasPrevistas  decimal.Decimal `json:"receitasPrevistas"`
	ReceitasRealizadas decimal.Decimal `json:"receitasRealizadas"`
	DespesasPrevistas  decimal.Decimal `json:"despesasPrevistas"`
	DespesasRealizadas decimal.Decimal `json:"despesasRealizadas"`
	SaldoPrevisto      decimal.Decimal `json:"saldoPrevisto"`
	SaldoRealizado     decimal.Decimal `json:"saldoRealizado"`
	QuantidadeVencidos int             `json:"quantidadeVencidos"`
	ValorVencido       decimal.Decimal `json:"valorVencido"`
}

func dentro(t time.Time, de, ate *time.Time) bool {
	if de != nil && t.Before(*de) {
		return false
	}
	if ate != nil && !t.Before(ate.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// MontarResumo agrega os lançamentos. Previsto considera o vencimento no período,
// realizado considera a data de pagamento; cancelados são ignorados.
func MontarResumo(lancamentos []LancamentoFinanceiro, de, ate *time.Time, hoje time.Time) ResumoDTO {
	out := ResumoDTO{De: de, Ate: ate}
	for _, l := range lancamentos {
		if l.Status == StatusCancelado || !l.Ativo {
			continue
		}
		receita := l.Tipo == TipoReceita

		if dentro(l.DataVencimento, de, ate) {
			if receita {
				out.ReceitasPrevistas = out.ReceitasPrevistas.Add(l.Valor)
			} else {
				out.DespesasPrevistas = out.DespesasPrevistas.Add(l.Valor)
			}
		}
		if l.Status == StatusPago && l.DataPagamento != nil && dentro(*l.DataPagamento, de, ate) {
			if receita {
				out.ReceitasRealizadas = out.ReceitasRealizadas.Add(l.Valor)
			} else {
				out.DespesasRealizadas = out.DespesasRealizadas.Add(l.Valor)
			}
		}
		if l.Vencido(hoje) {
			out.QuantidadeVencidos++
			out.ValorVencido = out.ValorVencido.Add(l.Valor)
		}
	}
	out.SaldoPrevisto = out.ReceitasPrevistas.Sub(out.DespesasPrevistas)
	out.SaldoRealizado = out.ReceitasRealizadas.Sub(out.DespesasRealizadas)
	return out
}
