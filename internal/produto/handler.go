package produto

import (
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-erp/internal/utils"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func (req *ProdutoRequest) aplicar(p *Produto) {
	p.Codigo = strings.TrimSpace(req.Codigo)
	p.Descricao = req.Descricao
	p.Unidade = req.Unidade
	if p.Unidade == "" {
		p.Unidade = "UN"
	}
	p.PrecoCusto = req.PrecoCusto.Round(2)
	p.PrecoVenda = req.PrecoVenda.Round(2)
	p.Estoque = req.Estoque
	p.FornecedorID = req.FornecedorID
}

func (req *ProdutoRequest) conferirPrecos() bool {
	return !req.PrecoCusto.IsNegative() && !req.PrecoVenda.IsNegative()
}

// GET /produtos
func (h *Handler) ListProdutos(w http.ResponseWriter, r *http.Request) {
	produtos, err := h.Repo.ListAll(r.URL.Query().Get("busca"), utils.IncluirInativos(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao buscar produtos", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, produtos)
}

// POST /produtos
func (h *Handler) CreateProduto(w http.ResponseWriter, r *http.Request) {
	var req ProdutoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if !req.conferirPrecos() {
		http.Error(w, "preços não podem ser negativos", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.FindByCodigo(strings.TrimSpace(req.Codigo)); err == nil {
		http.Error(w, "código de produto já cadastrado", http.StatusConflict)
		return
	}

	var p Produto
	req.aplicar(&p)
	if err := h.Repo.Create(&p); err != nil {
		utils.ErroInterno(w, r, "erro ao inserir produto", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// GET /produtos/{id}
func (h *Handler) GetProduto(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(id)
	if err != nil {
		utils.ErroBanco(w, r, "produto não encontrado", "erro ao buscar produto", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// PUT /produtos/{id}
func (h *Handler) UpdateProduto(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}
	var req ProdutoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if !req.conferirPrecos() {
		http.Error(w, "preços não podem ser negativos", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(id)
	if err != nil {
		utils.ErroBanco(w, r, "produto não encontrado", "erro ao buscar produto", err)
		return
	}
	if outro, err := h.Repo.FindByCodigo(strings.TrimSpace(req.Codigo)); err == nil && outro.ID != id {
		http.Error(w, "código de produto já cadastrado", http.StatusConflict)
		return
	}

	req.aplicar(existing)
	if err := h.Repo.Update(existing); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar produto", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, existing)
}

// DELETE /produtos/{id}
func (h *Handler) DeleteProduto(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de produto inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Deactivate(id); err != nil {
		utils.ErroBanco(w, r, "produto não encontrado", "erro ao deletar produto", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
