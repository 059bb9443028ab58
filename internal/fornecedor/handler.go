package fornecedor

import (
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/notificacao"
	"github.com/KromaEnergia/api-erp/internal/utils"
)

type Handler struct {
	Repo        *Repository
	Notificador notificacao.Notificador
}

func NewHandler(repo *Repository, n notificacao.Notificador) *Handler {
	return &Handler{Repo: repo, Notificador: n}
}

func (req *FornecedorRequest) aplicar(f *Fornecedor) {
	f.RazaoSocial = req.RazaoSocial
	f.NomeFantasia = req.NomeFantasia
	f.CNPJ = utils.SomenteDigitos(req.CNPJ)
	f.Contato = req.Contato
	f.Email = req.Email
	f.Telefone = req.Telefone
	f.Endereco = req.Endereco
	f.Endereco.Normalizar()
	f.Observacoes = req.Observacoes
}

// GET /fornecedores
func (h *Handler) ListFornecedores(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll(r.URL.Query().Get("busca"), utils.IncluirInativos(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar fornecedores", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /fornecedores
func (h *Handler) CreateFornecedor(w http.ResponseWriter, r *http.Request) {
	var req FornecedorRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}

	var f Fornecedor
	req.aplicar(&f)
	if f.CNPJ != "" {
		if _, err := h.Repo.FindByCNPJ(f.CNPJ); err == nil {
			h.Notificador.DocumentoDuplicado(r.Context(), "fornecedor", f.CNPJ)
			http.Error(w, "já existe um fornecedor com este CNPJ", http.StatusConflict)
			return
		}
	}

	if err := h.Repo.Create(&f); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar fornecedor", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, f)
}

// GET /fornecedores/{id}
func (h *Handler) GetFornecedor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, err := h.Repo.FindByID(id)
	if err != nil {
		utils.ErroBanco(w, r, "fornecedor não encontrado", "erro ao buscar fornecedor", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, f)
}

// PUT /fornecedores/{id}
func (h *Handler) UpdateFornecedor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req FornecedorRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}

	existing, err := h.Repo.FindByID(id)
	if err != nil {
		utils.ErroBanco(w, r, "fornecedor não encontrado", "erro ao buscar fornecedor", err)
		return
	}
	req.aplicar(existing)
	if existing.CNPJ != "" {
		if outro, err := h.Repo.FindByCNPJ(existing.CNPJ); err == nil && outro.ID != existing.ID {
			http.Error(w, "já existe um fornecedor com este CNPJ", http.StatusConflict)
			return
		}
	}

	if err := h.Repo.Update(existing); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar fornecedor", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, existing)
}

// DELETE /fornecedores/{id}
func (h *Handler) DeleteFornecedor(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repo.Deactivate(id); err != nil {
		utils.ErroBanco(w, r, "fornecedor não encontrado", "erro ao excluir fornecedor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
