package solar

import (
	"errors"
	"fmt"
	"math"
)

const (
	// PerformanceRatio desconta perdas de temperatura, cabeamento e conversão
	PerformanceRatio = 0.8
	// FatorInversor permite inversor com até 80% da potência do arranjo
	FatorInversor      = 0.8
	AreaPainelPadraoM2 = 2.0
	DiasMes            = 30
	Meses              = 12
	AnosAnalise        = 25

	Monofasico = "monofasico"
	Bifasico   = "bifasico"
	Trifasico  = "trifasico"
)

var ErrEntradaInvalida = errors.New("dados de entrada inválidos")

// custoDisponibilidade é o consumo mínimo faturado por tipo de ligação (kWh)
var custoDisponibilidade = map[string]float64{
	Monofasico: 30,
	Bifasico:   50,
	Trifasico:  100,
}

// percentualFioB é a parcela do Fio B cobrada sobre a energia compensada, por ano
var percentualFioB = map[int]float64{
	2023: 0.15,
	2024: 0.30,
	2025: 0.45,
	2026: 0.60,
	2027: 0.75,
	2028: 0.90,
}

func PercentualFioB(ano int) float64 {
	if p, ok := percentualFioB[ano]; ok {
		return p
	}
	if ano > 2028 {
		return 1
	}
	return 0
}

func CustoDisponibilidade(tipoLigacao string) (float64, bool) {
	v, ok := custoDisponibilidade[tipoLigacao]
	return v, ok
}

// Parametros são as entradas do dimensionamento
type Parametros struct {
	ConsumoMensalKWh float64 `json:"consumoMensalKwh"`
	// ConsumoPorMes opcional com 12 valores; quando informado, o dimensionamento usa a média
	ConsumoPorMes             []float64 `gorm:"serializer:json" json:"consumoPorMes,omitempty"`
	TarifaKWh                 float64   `json:"tarifaKwh"`
	IrradiacaoKWhM2Dia        float64   `json:"irradiacaoKwhM2Dia"`
	PotenciaPainelW           float64   `json:"potenciaPainelW"`
	AreaPainelM2              float64   `json:"areaPainelM2"`
	PotenciaInversorKW        float64   `json:"potenciaInversorKw"`
	TipoLigacao               string    `json:"tipoLigacao"`
	FatorSimultaneidade       float64   `json:"fatorSimultaneidade"`
	TarifaFioB                float64   `json:"tarifaFioB"`
	AnoReferencia             int       `json:"anoReferencia"`
	Investimento              float64   `json:"investimento"`
	PrecoPainel               float64   `json:"precoPainel"`
	PrecoInversor             float64   `json:"precoInversor"`
	CustoInstalacaoPercentual float64   `json:"custoInstalacaoPercentual"`
}

// Resultado do dimensionamento; Balanco não é persistido
type Resultado struct {
	PotenciaSistemaKWp      float64      `json:"potenciaSistemaKwp"`
	QuantidadePaineis       int          `json:"quantidadePaineis"`
	PotenciaInstaladaKWp    float64      `json:"potenciaInstaladaKwp"`
	QuantidadeInversores    int          `json:"quantidadeInversores"`
	GeracaoMensalKWh        float64      `json:"geracaoMensalKwh"`
	GeracaoAnualKWh         float64      `json:"geracaoAnualKwh"`
	AreaNecessariaM2        float64      `json:"areaNecessariaM2"`
	InvestimentoTotal       float64      `json:"investimentoTotal"`
	CustoDisponibilidadeKWh float64      `json:"custoDisponibilidadeKwh"`
	ContaSemSolarMedia      float64      `json:"contaSemSolarMedia"`
	ContaComSolarMedia      float64      `json:"contaComSolarMedia"`
	EconomiaMensal          float64      `json:"economiaMensal"`
	EconomiaAnual           float64      `json:"economiaAnual"`
	PaybackAnos             float64      `json:"paybackAnos"`
	ROI25Anos               float64      `json:"roi25Anos"`
	Balanco                 []MesBalanco `gorm:"-" json:"balanco,omitempty"`
}

// MesBalanco é uma linha do balanço energético mensal
type MesBalanco struct {
	Mes            int     `json:"mes"`
	ConsumoKWh     float64 `json:"consumoKwh"`
	GeracaoKWh     float64 `json:"geracaoKwh"`
	AutoconsumoKWh float64 `json:"autoconsumoKwh"`
	InjetadoKWh    float64 `json:"injetadoKwh"`
	ConsumoRedeKWh float64 `json:"consumoRedeKwh"`
	CompensadoKWh  float64 `json:"compensadoKwh"`
	FaturadoKWh    float64 `json:"faturadoKwh"`
	CreditosKWh    float64 `json:"creditosKwh"`
	CustoFioB      float64 `json:"custoFioB"`
	ContaSemSolar  float64 `json:"contaSemSolar"`
	ContaComSolar  float64 `json:"contaComSolar"`
	Economia       float64 `json:"economia"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// teto ignora o resíduo de ponto flutuante (6.0000000001 vira 6)
func teto(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

func (p *Parametros) consumos() []float64 {
	if len(p.ConsumoPorMes) == Meses {
		return p.ConsumoPorMes
	}
	out := make([]float64, Meses)
	for i := range out {
		out[i] = p.ConsumoMensalKWh
	}
	return out
}

// Validar confere as entradas e aplica os padrões (área do painel)
func (p *Parametros) Validar() error {
	if len(p.ConsumoPorMes) != 0 && len(p.ConsumoPorMes) != Meses {
		return fmt.Errorf("%w: consumo por mês deve ter 12 valores", ErrEntradaInvalida)
	}
	if len(p.ConsumoPorMes) == Meses {
		soma := 0.0
		for _, c := range p.ConsumoPorMes {
			if c < 0 {
				return fmt.Errorf("%w: consumo mensal negativo", ErrEntradaInvalida)
			}
			soma += c
		}
		p.ConsumoMensalKWh = round2(soma / Meses)
	}
	switch {
	case p.ConsumoMensalKWh <= 0:
		return fmt.Errorf("%w: consumo mensal deve ser maior que zero", ErrEntradaInvalida)
	case p.IrradiacaoKWhM2Dia <= 0:
		return fmt.Errorf("%w: irradiação deve ser maior que zero", ErrEntradaInvalida)
	case p.PotenciaPainelW <= 0:
		return fmt.Errorf("%w: potência do painel deve ser maior que zero", ErrEntradaInvalida)
	case p.PotenciaInversorKW <= 0:
		return fmt.Errorf("%w: potência do inversor deve ser maior que zero", ErrEntradaInvalida)
	case p.TarifaKWh < 0 || p.TarifaFioB < 0:
		return fmt.Errorf("%w: tarifas não podem ser negativas", ErrEntradaInvalida)
	case p.FatorSimultaneidade < 0 || p.FatorSimultaneidade > 1:
		return fmt.Errorf("%w: fator de simultaneidade deve estar entre 0 e 1", ErrEntradaInvalida)
	case p.Investimento < 0 || p.PrecoPainel < 0 || p.PrecoInversor < 0 || p.CustoInstalacaoPercentual < 0:
		return fmt.Errorf("%w: valores não podem ser negativos", ErrEntradaInvalida)
	}
	if _, ok := custoDisponibilidade[p.TipoLigacao]; !ok {
		return fmt.Errorf("%w: tipo de ligação '%s'", ErrEntradaInvalida, p.TipoLigacao)
	}
	if p.AreaPainelM2 <= 0 {
		p.AreaPainelM2 = AreaPainelPadraoM2
	}
	return nil
}

// Calcular dimensiona o sistema e monta o balanço de 12 meses
func Calcular(p Parametros) (Resultado, error) {
	if err := p.Validar(); err != nil {
		return Resultado{}, err
	}

	var r Resultado
	r.PotenciaSistemaKWp = round2((p.ConsumoMensalKWh / DiasMes / p.IrradiacaoKWhM2Dia) / PerformanceRatio)
	r.QuantidadePaineis = teto(r.PotenciaSistemaKWp * 1000 / p.PotenciaPainelW)
	r.PotenciaInstaladaKWp = round2(float64(r.QuantidadePaineis) * p.PotenciaPainelW / 1000)
	r.QuantidadeInversores = max(1, teto(r.PotenciaInstaladaKWp*FatorInversor/p.PotenciaInversorKW))
	r.GeracaoMensalKWh = round2(r.PotenciaInstaladaKWp * p.IrradiacaoKWhM2Dia * DiasMes * PerformanceRatio)
	r.GeracaoAnualKWh = round2(r.GeracaoMensalKWh * Meses)
	r.AreaNecessariaM2 = round2(float64(r.QuantidadePaineis) * p.AreaPainelM2)

	r.InvestimentoTotal = p.Investimento
	if r.InvestimentoTotal == 0 {
		equipamentos := float64(r.QuantidadePaineis)*p.PrecoPainel + float64(r.QuantidadeInversores)*p.PrecoInversor
		r.InvestimentoTotal = equipamentos * (1 + p.CustoInstalacaoPercentual/100)
	}
	r.InvestimentoTotal = round2(r.InvestimentoTotal)

	r.CustoDisponibilidadeKWh = custoDisponibilidade[p.TipoLigacao]
	r.Balanco = Balanco(p, r.GeracaoMensalKWh, r.CustoDisponibilidadeKWh)

	var sem, com float64
	for _, m := range r.Balanco {
		sem += m.ContaSemSolar
		com += m.ContaComSolar
	}
	r.ContaSemSolarMedia = round2(sem / Meses)
	r.ContaComSolarMedia = round2(com / Meses)
	r.EconomiaMensal = round2(sem/Meses - com/Meses)
	r.EconomiaAnual = round2(r.EconomiaMensal * Meses)

	if r.EconomiaMensal > 0 {
		r.PaybackAnos = round2(r.InvestimentoTotal / (r.EconomiaMensal * Meses))
	}
	if r.InvestimentoTotal > 0 {
		r.ROI25Anos = round2((r.EconomiaMensal*Meses*AnosAnalise - r.InvestimentoTotal) / r.InvestimentoTotal * 100)
	}
	return r, nil
}

// Balanco simula 12 meses com acúmulo de créditos. A energia injetada vira crédito
// no próprio mês; o faturado nunca fica abaixo do custo de disponibilidade.
func Balanco(p Parametros, geracaoMensal, minimo float64) []MesBalanco {
	fioB := p.TarifaFioB * PercentualFioB(p.AnoReferencia)
	creditos := 0.0
	out := make([]MesBalanco, 0, Meses)
	for i, consumo := range p.consumos() {
		auto := math.Min(geracaoMensal*p.FatorSimultaneidade, consumo)
		injetado := geracaoMensal - auto
		rede := consumo - auto
		creditos += injetado

		compensavel := math.Max(rede-minimo, 0)
		compensado := math.Min(creditos, compensavel)
		creditos -= compensado

		faturado := math.Max(rede-compensado, minimo)
		custoFioB := compensado * fioB
		conta := faturado*p.TarifaKWh + custoFioB
		semSolar := math.Max(consumo, minimo) * p.TarifaKWh

		out = append(out, MesBalanco{
			Mes:            i + 1,
			ConsumoKWh:     round2(consumo),
			GeracaoKWh:     round2(geracaoMensal),
			AutoconsumoKWh: round2(auto),
			InjetadoKWh:    round2(injetado),
			ConsumoRedeKWh: round2(rede),
			CompensadoKWh:  round2(compensado),
			FaturadoKWh:    round2(faturado),
			CreditosKWh:    round2(creditos),
			CustoFioB:      round2(custoFioB),
			ContaSemSolar:  round2(semSolar),
			ContaComSolar:  round2(conta),
			Economia:       round2(semSolar - conta),
		})
	}
	return out
}
