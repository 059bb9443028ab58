package precificacao

import (
	"errors"
	"math"
	"time"
)

var (
	ErrHorasInvalidas    = errors.New("horas produtivas no mês devem ser maiores que zero")
	ErrImpostosInvalidos = errors.New("percentual de impostos deve ser menor que 100")
)

// SimulacaoPrecificacao calcula o preço da hora técnica a partir dos custos mensais
type SimulacaoPrecificacao struct {
	ID                      uint    `gorm:"primaryKey" json:"id"`
	Nome                    string  `gorm:"size:120;not null" json:"nome"`
	CustosFixos             float64 `gorm:"not null" json:"custosFixos"`
	CustosVariaveis         float64 `gorm:"not null" json:"custosVariaveis"`
	Salarios                float64 `gorm:"not null" json:"salarios"`
	EncargosPercentual      float64 `gorm:"not null" json:"encargosPercentual"`
	ProLabore               float64 `gorm:"not null" json:"proLabore"`
	NumeroTecnicos          int     `gorm:"not null" json:"numeroTecnicos"`
	HorasMensaisPorTecnico  float64 `gorm:"not null" json:"horasMensaisPorTecnico"`
	ProdutividadePercentual float64 `gorm:"not null" json:"produtividadePercentual"`
	// HorasProdutivasMes, quando informado, substitui técnicos x horas x produtividade
	HorasProdutivasMes    float64 `gorm:"not null" json:"horasProdutivasMes"`
	MargemLucroPercentual float64 `gorm:"not null" json:"margemLucroPercentual"`
	ImpostosPercentual    float64 `gorm:"not null" json:"impostosPercentual"`

	MaoDeObra         float64 `gorm:"not null" json:"maoDeObra"`
	CustoTotalMensal  float64 `gorm:"not null" json:"custoTotalMensal"`
	HorasConsideradas float64 `gorm:"not null" json:"horasConsideradas"`
	CustoHora         float64 `gorm:"not null" json:"custoHora"`
	PrecoComMargem    float64 `gorm:"not null" json:"precoComMargem"`
	PrecoHoraFinal    float64 `gorm:"not null" json:"precoHoraFinal"`

	Ativo     bool      `gorm:"not null;index" json:"ativo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SimulacaoPrecificacao) TableName() string { return "simulacoes_precificacao" }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calcular preenche os campos de resultado
func (s *SimulacaoPrecificacao) Calcular() error {
	if s.ImpostosPercentual >= 100 {
		return ErrImpostosInvalidos
	}
	horas := s.HorasProdutivasMes
	if horas <= 0 {
		horas = float64(s.NumeroTecnicos) * s.HorasMensaisPorTecnico * s.ProdutividadePercentual / 100
	}
	if horas <= 0 {
		return ErrHorasInvalidas
	}

	maoDeObra := s.Salarios*(1+s.EncargosPercentual/100) + s.ProLabore
	total := s.CustosFixos + s.CustosVariaveis + maoDeObra
	custoHora := total / horas
	comMargem := custoHora * (1 + s.MargemLucroPercentual/100)
	final := comMargem / (1 - s.ImpostosPercentual/100)

	s.MaoDeObra = round2(maoDeObra)
	s.CustoTotalMensal = round2(total)
	s.HorasConsideradas = round2(horas)
	s.CustoHora = round2(custoHora)
	s.PrecoComMargem = round2(comMargem)
	s.PrecoHoraFinal = round2(final)
	return nil
}
