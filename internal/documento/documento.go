// Package documento monta os documentos impressos (ordem de serviço, proposta
// e projeto solar) em HTML e os converte em PDF.
package documento

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/KromaEnergia/api-erp/internal/configuracao"
	"github.com/KromaEnergia/api-erp/internal/ordemservico"
	"github.com/KromaEnergia/api-erp/internal/proposta"
	"github.com/KromaEnergia/api-erp/internal/solar"
)

//go:embed templates/*.html
var arquivos embed.FS

const (
	modeloOS       = "ordem_servico.html"
	modeloProposta = "proposta.html"
	modeloProjeto  = "projeto_solar.html"
)

// Pagina é o dado entregue a todos os modelos
type Pagina struct {
	Titulo   string
	Empresa  *configuracao.ConfiguracaoEmpresa
	GeradoEm time.Time
	Doc      any
	Balanco  []solar.MesBalanco
}

type Gerador struct {
	modelos *template.Template
}

func NewGerador() (*Gerador, error) {
	t, err := template.New("documentos").Funcs(funcoes()).ParseFS(arquivos, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar modelos de documento: %w", err)
	}
	return &Gerador{modelos: t}, nil
}

func (g *Gerador) executar(modelo string, p Pagina) (string, error) {
	if p.Empresa == nil {
		padrao := configuracao.Padrao()
		p.Empresa = &padrao
	}
	var buf bytes.Buffer
	if err := g.modelos.ExecuteTemplate(&buf, modelo, p); err != nil {
		return "", fmt.Errorf("erro ao montar %s: %w", modelo, err)
	}
	return buf.String(), nil
}

func (g *Gerador) OrdemServico(empresa *configuracao.ConfiguracaoEmpresa, o *ordemservico.OrdemServico, agora time.Time) (string, error) {
	return g.executar(modeloOS, Pagina{
		Titulo:   "Ordem de Serviço " + o.Numero,
		Empresa:  empresa,
		GeradoEm: agora,
		Doc:      o,
	})
}

func (g *Gerador) Proposta(empresa *configuracao.ConfiguracaoEmpresa, p *proposta.PropostaComercial, agora time.Time) (string, error) {
	return g.executar(modeloProposta, Pagina{
		Titulo:   "Proposta " + p.Numero,
		Empresa:  empresa,
		GeradoEm: agora,
		Doc:      p,
	})
}

// ProjetoSolar inclui o balanço mensal quando os parâmetros permitem recalcular
func (g *Gerador) ProjetoSolar(empresa *configuracao.ConfiguracaoEmpresa, p *solar.ProjetoSolar, agora time.Time) (string, error) {
	pag := Pagina{
		Titulo:   "Projeto " + p.Nome,
		Empresa:  empresa,
		GeradoEm: agora,
		Doc:      p,
	}
	if res, err := solar.Calcular(p.Parametros); err == nil {
		pag.Balanco = res.Balanco
	}
	return g.executar(modeloProjeto, pag)
}
