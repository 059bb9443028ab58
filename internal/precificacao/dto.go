package precificacao

import "strings"

// SimulacaoRequest é usado em POST/PUT /precificacao e POST /precificacao/calcular
type SimulacaoRequest struct {
	Nome                    string  `json:"nome"`
	CustosFixos             float64 `json:"custosFixos" validate:"gte=0"`
	CustosVariaveis         float64 `json:"custosVariaveis" validate:"gte=0"`
	Salarios                float64 `json:"salarios" validate:"gte=0"`
	EncargosPercentual      float64 `json:"encargosPercentual" validate:"gte=0"`
	ProLabore               float64 `json:"proLabore" validate:"gte=0"`
	NumeroTecnicos          int     `json:"numeroTecnicos" validate:"gte=0"`
	HorasMensaisPorTecnico  float64 `json:"horasMensaisPorTecnico" validate:"gte=0"`
	ProdutividadePercentual float64 `json:"produtividadePercentual" validate:"gte=0,lte=100"`
	HorasProdutivasMes      float64 `json:"horasProdutivasMes" validate:"gte=0"`
	MargemLucroPercentual   float64 `json:"margemLucroPercentual" validate:"gte=0"`
	ImpostosPercentual      float64 `json:"impostosPercentual" validate:"gte=0"`
}

func (req *SimulacaoRequest) aplicar(s *SimulacaoPrecificacao) {
	s.Nome = strings.TrimSpace(req.Nome)
	s.CustosFixos = req.CustosFixos
	s.CustosVariaveis = req.CustosVariaveis
	s.Salarios = req.Salarios
	s.EncargosPercentual = req.EncargosPercentual
	s.ProLabore = req.ProLabore
	s.NumeroTecnicos = req.NumeroTecnicos
	s.HorasMensaisPorTecnico = req.HorasMensaisPorTecnico
	s.ProdutividadePercentual = req.ProdutividadePercentual
	s.HorasProdutivasMes = req.HorasProdutivasMes
	s.MargemLucroPercentual = req.MargemLucroPercentual
	s.ImpostosPercentual = req.ImpostosPercentual
}
