package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parametrosBase() Parametros {
	return Parametros{
		ConsumoMensalKWh:          500,
		TarifaKWh:                 0.9,
		IrradiacaoKWhM2Dia:        5,
		PotenciaPainelW:           550,
		PotenciaInversorKW:        5,
		TipoLigacao:               Bifasico,
		FatorSimultaneidade:       0.3,
		TarifaFioB:                0.25,
		AnoReferencia:             2026,
		PrecoPainel:               900,
		PrecoInversor:             4000,
		CustoInstalacaoPercentual: 20,
	}
}

func TestCalcular(t *testing.T) {
	r, err := Calcular(parametrosBase())
	require.NoError(t, err)

	assert.InDelta(t, 4.17, r.PotenciaSistemaKWp, 1e-9)
	assert.Equal(t, 8, r.QuantidadePaineis)
	assert.InDelta(t, 4.4, r.PotenciaInstaladaKWp, 1e-9)
	assert.Equal(t, 1, r.QuantidadeInversores)
	assert.InDelta(t, 528, r.GeracaoMensalKWh, 1e-9)
	assert.InDelta(t, 6336, r.GeracaoAnualKWh, 1e-9)
	assert.InDelta(t, 16, r.AreaNecessariaM2, 1e-9)
	assert.InDelta(t, 13440, r.InvestimentoTotal, 1e-9)
	assert.InDelta(t, 50, r.CustoDisponibilidadeKWh, 1e-9)

	require.Len(t, r.Balanco, 12)
	m := r.Balanco[0]
	assert.InDelta(t, 158.4, m.AutoconsumoKWh, 0.001)
	assert.InDelta(t, 369.6, m.InjetadoKWh, 0.001)
	assert.InDelta(t, 291.6, m.CompensadoKWh, 0.001)
	assert.InDelta(t, 50, m.FaturadoKWh, 0.001)
	assert.InDelta(t, 43.74, m.CustoFioB, 0.001)
	assert.InDelta(t, 88.74, m.ContaComSolar, 0.001)
	assert.InDelta(t, 450, m.ContaSemSolar, 0.001)
	assert.InDelta(t, 936, r.Balanco[11].CreditosKWh, 0.01)

	assert.InDelta(t, 361.26, r.EconomiaMensal, 0.001)
	assert.InDelta(t, 4335.12, r.EconomiaAnual, 0.001)
	assert.InDelta(t, 3.10, r.PaybackAnos, 0.001)
	assert.InDelta(t, 706.38, r.ROI25Anos, 0.001)
}

func TestCalcular_InvestimentoInformado(t *testing.T) {
	p := parametrosBase()
	p.Investimento = 20000
	p.TipoLigacao = Trifasico
	p.AreaPainelM2 = 2.5

	r, err := Calcular(p)
	require.NoError(t, err)
	assert.InDelta(t, 20000, r.InvestimentoTotal, 1e-9)
	assert.InDelta(t, 100, r.CustoDisponibilidadeKWh, 1e-9)
	assert.InDelta(t, 20, r.AreaNecessariaM2, 1e-9)
}

func TestCalcular_InversorSubdimensionado(t *testing.T) {
	p := parametrosBase()
	p.ConsumoMensalKWh = 3000
	p.PotenciaInversorKW = 8.2

	r, err := Calcular(p)
	require.NoError(t, err)
	// 25 kWp -> 46 painéis = 25.3 kWp instalados; 25.3 * 0.8 / 8.2 = 2.47
	assert.InDelta(t, 25, r.PotenciaSistemaKWp, 1e-9)
	assert.Equal(t, 46, r.QuantidadePaineis)
	assert.Equal(t, 3, r.QuantidadeInversores)
}

func TestCalcular_SemEconomia(t *testing.T) {
	p := parametrosBase()
	p.TarifaKWh = 0
	p.TarifaFioB = 0

	r, err := Calcular(p)
	require.NoError(t, err)
	assert.Zero(t, r.EconomiaMensal)
	assert.Zero(t, r.PaybackAnos)
	assert.InDelta(t, -100, r.ROI25Anos, 1e-9)
}

func TestCalcular_Invalido(t *testing.T) {
	casos := map[string]func(*Parametros){
		"consumo zero":          func(p *Parametros) { p.ConsumoMensalKWh = 0 },
		"irradiação zero":       func(p *Parametros) { p.IrradiacaoKWhM2Dia = 0 },
		"painel sem potência":   func(p *Parametros) { p.PotenciaPainelW = 0 },
		"ligação desconhecida":  func(p *Parametros) { p.TipoLigacao = "industrial" },
		"simultaneidade > 1":    func(p *Parametros) { p.FatorSimultaneidade = 1.5 },
		"consumo por mês curto": func(p *Parametros) { p.ConsumoPorMes = []float64{1, 2, 3} },
	}
	for nome, mudar := range casos {
		t.Run(nome, func(t *testing.T) {
			p := parametrosBase()
			mudar(&p)
			_, err := Calcular(p)
			assert.ErrorIs(t, err, ErrEntradaInvalida)
		})
	}
}

func TestBalanco_CreditosAcumulados(t *testing.T) {
	p := Parametros{
		TarifaKWh:     1,
		AnoReferencia: 2022,
		ConsumoPorMes: []float64{100, 300, 400, 100, 100, 100, 100, 100, 100, 100, 100, 100},
	}
	b := Balanco(p, 200, 30)
	require.Len(t, b, 12)

	esperado := []struct{ compensado, creditos, conta float64 }{
		{70, 130, 30},
		{270, 60, 30},
		{260, 0, 140},
		{70, 130, 30},
	}
	for i, e := range esperado {
		assert.InDelta(t, e.compensado, b[i].CompensadoKWh, 0.001, "mês %d", i+1)
		assert.InDelta(t, e.creditos, b[i].CreditosKWh, 0.001, "mês %d", i+1)
		assert.InDelta(t, e.conta, b[i].ContaComSolar, 0.001, "mês %d", i+1)
		assert.Zero(t, b[i].CustoFioB)
	}
}

func TestPercentualFioB(t *testing.T) {
	tests := []struct {
		ano  int
		want float64
	}{
		{2022, 0},
		{2023, 0.15},
		{2024, 0.30},
		{2026, 0.60},
		{2028, 0.90},
		{2029, 1},
		{2035, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PercentualFioB(tt.ano), 1e-9, "ano %d", tt.ano)
	}
}

func TestCarregarCatalogo(t *testing.T) {
	c, err := CarregarCatalogo(nil)
	require.NoError(t, err)
	require.NotEmpty(t, c.Paineis)
	require.NotEmpty(t, c.Inversores)
	assert.Equal(t, "Canadian Solar", c.Paineis[0].Fabricante)
	assert.InDelta(t, 550, c.Paineis[0].PotenciaW, 1e-9)
	assert.Equal(t, "890", c.Paineis[0].Preco.String())
	assert.True(t, c.Paineis[0].Ativo)

	_, err = CarregarCatalogo([]byte("paineis:\n  - modelo: X\n    preco: abc\n"))
	assert.Error(t, err)
}
