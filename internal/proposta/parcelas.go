package proposta

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ModoAVista           = "avista"
	ModoEntradaEParcelas = "entradaEParcelas"
	ModoParcelasIguais   = "parcelasIguais"
	ModoDividirEmDuas    = "dividirEmDuas"

	ParcelaPendente = "Pendente"
)

var ErrPlanoInvalido = errors.New("plano de pagamento inválido")

// Plano descreve como o total da proposta é dividido
type Plano struct {
	Modo               string
	Total              decimal.Decimal
	Entrada            decimal.Decimal
	QtdParcelas        int
	PrimeiroVencimento time.Time
}

// GerarParcelas monta o cronograma do plano. A soma das parcelas é sempre igual ao
// total; a sobra do arredondamento fica na última parcela.
func GerarParcelas(pl Plano) ([]ParcelaProposta, error) {
	total := pl.Total.Round(2)
	inicio := pl.PrimeiroVencimento
	var parcelas []ParcelaProposta
	add := func(valor decimal.Decimal, venc time.Time) {
		parcelas = append(parcelas, ParcelaProposta{
			Numero:         len(parcelas) + 1,
			Valor:          valor,
			DataVencimento: venc,
			Status:         ParcelaPendente,
		})
	}

	switch pl.Modo {
	case ModoAVista:
		add(total, inicio)

	case ModoDividirEmDuas:
		metade := total.Div(decimal.NewFromInt(2)).Truncate(2)
		add(metade, inicio)
		add(total.Sub(metade), inicio.AddDate(0, 0, 30))

	case ModoEntradaEParcelas:
		entrada := pl.Entrada.Round(2)
		if !entrada.IsPositive() || entrada.GreaterThanOrEqual(total) {
			return nil, fmt.Errorf("%w: entrada deve ser maior que zero e menor que o total", ErrPlanoInvalido)
		}
		if pl.QtdParcelas < 1 {
			return nil, fmt.Errorf("%w: informe a quantidade de parcelas", ErrPlanoInvalido)
		}
		add(entrada, inicio)
		for i, v := range dividir(total.Sub(entrada), pl.QtdParcelas) {
			add(v, inicio.AddDate(0, i+1, 0))
		}

	case ModoParcelasIguais:
		if pl.QtdParcelas < 1 {
			return nil, fmt.Errorf("%w: informe a quantidade de parcelas", ErrPlanoInvalido)
		}
		for i, v := range dividir(total, pl.QtdParcelas) {
			add(v, inicio.AddDate(0, i, 0))
		}

	default:
		return nil, fmt.Errorf("%w: modo de pagamento '%s'", ErrPlanoInvalido, pl.Modo)
	}
	return parcelas, nil
}

func dividir(valor decimal.Decimal, n int) []decimal.Decimal {
	base := valor.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	out := make([]decimal.Decimal, n)
	for i := range n - 1 {
		out[i] = base
	}
	out[n-1] = valor.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))
	return out
}
