package cliente

import (
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/notificacao"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/KromaEnergia/api-erp/internal/utils/exportar"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Notificador notificacao.Notificador
}

func NewHandler(db *gorm.DB, n notificacao.Notificador) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Notificador: n,
	}
}

func filtro(r *http.Request) Filtro {
	return Filtro{
		Busca:           r.URL.Query().Get("busca"),
		IncluirInativos: utils.IncluirInativos(r),
	}
}

// GET /clientes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.Listar(h.DB, filtro(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar clientes", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /clientes
// Documento já cadastrado em outro cliente ativo gera 409 e alerta no webhook.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req ClienteRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := req.conferirDocumento(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var c Cliente
	req.aplicar(&c)
	if c.Documento != "" {
		if _, err := h.Repository.BuscarPorDocumento(h.DB, c.Documento); err == nil {
			h.Notificador.DocumentoDuplicado(r.Context(), "cliente", c.Documento)
			http.Error(w, "já existe um cliente com este documento", http.StatusConflict)
			return
		}
	}

	if err := h.Repository.Criar(h.DB, &c); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar cliente", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, c)
}

// GET /clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "cliente não encontrado", "erro ao buscar cliente", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// PUT /clientes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req ClienteRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := req.conferirDocumento(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "cliente não encontrado", "erro ao buscar cliente", err)
		return
	}
	req.aplicar(c)
	if c.Documento != "" {
		if outro, err := h.Repository.BuscarPorDocumento(h.DB, c.Documento); err == nil && outro.ID != c.ID {
			http.Error(w, "já existe um cliente com este documento", http.StatusConflict)
			return
		}
	}

	if err := h.Repository.Atualizar(h.DB, c); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar cliente", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// DELETE /clientes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.Desativar(h.DB, id); err != nil {
		utils.ErroBanco(w, r, "cliente não encontrado", "erro ao excluir cliente", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /clientes/exportar?formato=csv|xlsx
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	formato, err := exportar.Formato(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	list, err := h.Repository.Listar(h.DB, filtro(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar clientes", err)
		return
	}

	p := exportar.Planilha{
		Nome:      "Clientes",
		Cabecalho: []string{"ID", "Nome", "Tipo", "Documento", "Email", "Telefone", "Cidade", "UF", "Ativo"},
	}
	for _, c := range list {
		ativo := "Sim"
		if !c.Ativo {
			ativo = "Não"
		}
		p.Linhas = append(p.Linhas, []any{c.ID, c.Nome, c.TipoPessoa, c.Documento, c.Email, c.Telefone, c.Cidade, c.UF, ativo})
	}
	if err := exportar.Responder(w, formato, "clientes", p); err != nil {
		utils.ErroInterno(w, r, "erro ao exportar clientes", err)
	}
}
