package documento

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KromaEnergia/api-erp/internal/configuracao"
	"github.com/KromaEnergia/api-erp/internal/ordemservico"
	"github.com/KromaEnergia/api-erp/internal/proposta"
	"github.com/KromaEnergia/api-erp/internal/solar"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB        *gorm.DB
	Gerador   *Gerador
	Renderer  Renderer
	Empresa   func(ctx context.Context) (*configuracao.ConfiguracaoEmpresa, error)
	Ordens    ordemservico.Repository
	Propostas proposta.Repository
	Projetos  solar.ProjetoRepository
	Agora     func() time.Time
}

func NewHandler(db *gorm.DB, g *Gerador, r Renderer, cfg *configuracao.Servico) *Handler {
	return &Handler{
		DB:        db,
		Gerador:   g,
		Renderer:  r,
		Empresa:   cfg.Obter,
		Ordens:    ordemservico.NewRepository(),
		Propostas: proposta.NewRepository(),
		Projetos:  solar.NewProjetoRepository(),
		Agora:     time.Now,
	}
}

// responder devolve o HTML com ?formato=html ou o PDF renderizado
func (h *Handler) responder(w http.ResponseWriter, r *http.Request, nome, html string) {
	if strings.EqualFold(r.URL.Query().Get("formato"), "html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
		return
	}
	pdf, err := h.Renderer.Render(r.Context(), html)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao gerar PDF", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", nome+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) empresa(w http.ResponseWriter, r *http.Request) (*configuracao.ConfiguracaoEmpresa, bool) {
	e, err := h.Empresa(r.Context())
	if err != nil {
		utils.ErroInterno(w, r, "erro ao carregar configuração", err)
		return nil, false
	}
	return e, true
}

// GET /ordens-servico/{id}/pdf
func (h *Handler) OrdemServico(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := h.Ordens.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "ordem de serviço não encontrada", "erro ao buscar ordem de serviço", err)
		return
	}
	e, ok := h.empresa(w, r)
	if !ok {
		return
	}
	html, err := h.Gerador.OrdemServico(e, o, h.Agora())
	if err != nil {
		utils.ErroInterno(w, r, "erro ao montar documento", err)
		return
	}
	h.responder(w, r, o.Numero, html)
}

// GET /propostas/{id}/pdf
func (h *Handler) Proposta(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Propostas.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "proposta não encontrada", "erro ao buscar proposta", err)
		return
	}
	e, ok := h.empresa(w, r)
	if !ok {
		return
	}
	html, err := h.Gerador.Proposta(e, p, h.Agora())
	if err != nil {
		utils.ErroInterno(w, r, "erro ao montar documento", err)
		return
	}
	h.responder(w, r, p.Numero, html)
}

// GET /solar/projetos/{id}/pdf
func (h *Handler) ProjetoSolar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Projetos.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "projeto não encontrado", "erro ao buscar projeto", err)
		return
	}
	e, ok := h.empresa(w, r)
	if !ok {
		return
	}
	html, err := h.Gerador.ProjetoSolar(e, p, h.Agora())
	if err != nil {
		utils.ErroInterno(w, r, "erro ao montar documento", err)
		return
	}
	h.responder(w, r, fmt.Sprintf("projeto-%d", p.ID), html)
}
