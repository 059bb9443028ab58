package solar

import (
	"strings"

	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/shopspring/decimal"
)

type PainelRequest struct {
	Fabricante           string          `json:"fabricante" validate:"required"`
	Modelo               string          `json:"modelo" validate:"required"`
	PotenciaW            float64         `json:"potenciaW" validate:"gt=0"`
	EficienciaPercentual float64         `json:"eficienciaPercentual" validate:"gte=0,lte=100"`
	AreaM2               float64         `json:"areaM2" validate:"gte=0"`
	Preco                decimal.Decimal `json:"preco"`
}

func (req *PainelRequest) aplicar(p *PainelSolar) {
	p.Fabricante = strings.TrimSpace(req.Fabricante)
	p.Modelo = strings.TrimSpace(req.Modelo)
	p.PotenciaW = req.PotenciaW
	p.EficienciaPercentual = req.EficienciaPercentual
	p.AreaM2 = req.AreaM2
	p.Preco = req.Preco.Round(2)
}

type InversorRequest struct {
	Fabricante string          `json:"fabricante" validate:"required"`
	Modelo     string          `json:"modelo" validate:"required"`
	PotenciaKW float64         `json:"potenciaKw" validate:"gt=0"`
	Fases      int             `json:"fases" validate:"oneof=1 2 3"`
	Preco      decimal.Decimal `json:"preco"`
}

func (req *InversorRequest) aplicar(i *Inversor) {
	i.Fabricante = strings.TrimSpace(req.Fabricante)
	i.Modelo = strings.TrimSpace(req.Modelo)
	i.PotenciaKW = req.PotenciaKW
	i.Fases = req.Fases
	i.Preco = req.Preco.Round(2)
}

// CalculoRequest é o corpo de POST /solar/calcular. Com painelId/inversorId os dados
// do equipamento vêm do catálogo.
type CalculoRequest struct {
	PainelID   *uint `json:"painelId"`
	InversorID *uint `json:"inversorId"`
	Parametros
}

// ProjetoRequest é usado em POST /solar/projetos e PUT /solar/projetos/{id}
type ProjetoRequest struct {
	Nome        string     `json:"nome" validate:"required"`
	ClienteID   uint       `json:"clienteId" validate:"required"`
	PainelID    *uint      `json:"painelId"`
	InversorID  *uint      `json:"inversorId"`
	Parametros  Parametros `json:"parametros"`
	Observacoes string     `json:"observacoes"`
}

// GerarPropostaRequest define o plano de pagamento da proposta gerada (padrão à vista)
type GerarPropostaRequest struct {
	ModoPagamento      string          `json:"modoPagamento" validate:"omitempty,oneof=avista entradaEParcelas parcelasIguais dividirEmDuas"`
	QtdParcelas        int             `json:"qtdParcelas" validate:"gte=0,lte=120"`
	Entrada            decimal.Decimal `json:"entrada"`
	PrimeiroVencimento utils.Data      `json:"primeiroVencimento"`
}

// Padroes completa os parâmetros não informados
type Padroes struct {
	TarifaKWh            float64
	IrradiacaoKWhM2Dia   float64
	TarifaFioB           float64
	DiasValidadeProposta int
}
