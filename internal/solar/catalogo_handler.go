package solar

import (
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/utils"
)

// GET /solar/paineis
func (h *Handler) ListarPaineis(w http.ResponseWriter, r *http.Request) {
	list, err := h.Catalogo.ListarPaineis(r.URL.Query().Get("busca"), utils.IncluirInativos(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar painéis", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /solar/paineis
func (h *Handler) CriarPainel(w http.ResponseWriter, r *http.Request) {
	var req PainelRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if req.Preco.IsNegative() {
		http.Error(w, "preço não pode ser negativo", http.StatusBadRequest)
		return
	}
	p := PainelSolar{Ativo: true}
	req.aplicar(&p)
	if err := h.Catalogo.SalvarPainel(&p); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar painel", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// GET /solar/paineis/{id}
func (h *Handler) BuscarPainel(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Catalogo.BuscarPainel(id)
	if err != nil {
		utils.ErroBanco(w, r, "painel não encontrado", "erro ao buscar painel", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// PUT /solar/paineis/{id}
func (h *Handler) AtualizarPainel(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req PainelRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if req.Preco.IsNegative() {
		http.Error(w, "preço não pode ser negativo", http.StatusBadRequest)
		return
	}
	p, err := h.Catalogo.BuscarPainel(id)
	if err != nil {
		utils.ErroBanco(w, r, "painel não encontrado", "erro ao buscar painel", err)
		return
	}
	req.aplicar(p)
	if err := h.Catalogo.SalvarPainel(p); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar painel", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// DELETE /solar/paineis/{id}
func (h *Handler) DeletarPainel(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Catalogo.DesativarPainel(id); err != nil {
		utils.ErroBanco(w, r, "painel não encontrado", "erro ao excluir painel", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /solar/inversores
func (h *Handler) ListarInversores(w http.ResponseWriter, r *http.Request) {
	list, err := h.Catalogo.ListarInversores(r.URL.Query().Get("busca"), utils.IncluirInativos(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar inversores", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /solar/inversores
func (h *Handler) CriarInversor(w http.ResponseWriter, r *http.Request) {
	var req InversorRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if req.Preco.IsNegative() {
		http.Error(w, "preço não pode ser negativo", http.StatusBadRequest)
		return
	}
	i := Inversor{Ativo: true}
	req.aplicar(&i)
	if err := h.Catalogo.SalvarInversor(&i); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar inversor", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, i)
}

// GET /solar/inversores/{id}
func (h *Handler) BuscarInversor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	i, err := h.Catalogo.BuscarInversor(id)
	if err != nil {
		utils.ErroBanco(w, r, "inversor não encontrado", "erro ao buscar inversor", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, i)
}

// PUT /solar/inversores/{id}
func (h *Handler) AtualizarInversor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req InversorRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if req.Preco.IsNegative() {
		http.Error(w, "preço não pode ser negativo", http.StatusBadRequest)
		return
	}
	i, err := h.Catalogo.BuscarInversor(id)
	if err != nil {
		utils.ErroBanco(w, r, "inversor não encontrado", "erro ao buscar inversor", err)
		return
	}
	req.aplicar(i)
	if err := h.Catalogo.SalvarInversor(i); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar inversor", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, i)
}

// DELETE /solar/inversores/{id}
func (h *Handler) DeletarInversor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Catalogo.DesativarInversor(id); err != nil {
		utils.ErroBanco(w, r, "inversor não encontrado", "erro ao excluir inversor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
