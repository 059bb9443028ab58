package precificacao

import (
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/utils"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /precificacao/calcular
// Calcula sem gravar.
func (h *Handler) Calcular(w http.ResponseWriter, r *http.Request) {
	var req SimulacaoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	var s SimulacaoPrecificacao
	req.aplicar(&s)
	if err := s.Calcular(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, s)
}

// GET /precificacao
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll(r.URL.Query().Get("busca"), utils.IncluirInativos(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar simulações", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /precificacao
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SimulacaoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	var s SimulacaoPrecificacao
	req.aplicar(&s)
	if s.Nome == "" {
		http.Error(w, "campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}
	if err := s.Calcular(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repo.Create(&s); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar simulação", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, s)
}

// GET /precificacao/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(id)
	if err != nil {
		utils.ErroBanco(w, r, "simulação não encontrada", "erro ao buscar simulação", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, s)
}

// PUT /precificacao/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req SimulacaoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	s, err := h.Repo.FindByID(id)
	if err != nil {
		utils.ErroBanco(w, r, "simulação não encontrada", "erro ao buscar simulação", err)
		return
	}
	nome := s.Nome
	req.aplicar(s)
	if s.Nome == "" {
		s.Nome = nome
	}
	if err := s.Calcular(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repo.Update(s); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar simulação", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, s)
}

// DELETE /precificacao/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		utils.ErroBanco(w, r, "simulação não encontrada", "erro ao excluir simulação", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
