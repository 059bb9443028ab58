package comentario

import (
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/auth"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

func (h *Handler) existe(referencia string, id uint) (bool, error) {
	var total int64
	err := h.DB.Table(tabelas[referencia]).Where("id = ?", id).Count(&total).Error
	return total > 0, err
}

// ListarPor atende GET /ordens-servico/{id}/comentarios e GET /propostas/{id}/comentarios
func (h *Handler) ListarPor(referencia string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		comentarios, err := h.Repository.ListarPorReferencia(h.DB, referencia, id)
		if err != nil {
			utils.ErroInterno(w, r, "erro ao listar comentários", err)
			return
		}
		out, err := toDTOs(h.DB, comentarios)
		if err != nil {
			utils.ErroInterno(w, r, "erro ao listar comentários", err)
			return
		}
		utils.ResponderJSON(w, http.StatusOK, out)
	}
}

// CriarPara atende POST /ordens-servico/{id}/comentarios e POST /propostas/{id}/comentarios
func (h *Handler) CriarPara(referencia string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.IDParam(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var req CriarComentarioRequest
		if !utils.DecodificarJSON(w, r, &req) {
			return
		}

		ok, err := h.existe(referencia, id)
		if err != nil {
			utils.ErroInterno(w, r, "erro ao criar comentário", err)
			return
		}
		if !ok {
			http.Error(w, "registro não encontrado", http.StatusNotFound)
			return
		}

		userID := auth.UsuarioID(r.Context())
		c := Comentario{
			Texto:        req.Texto,
			Referencia:   referencia,
			ReferenciaID: id,
		}
		if userID != 0 {
			c.UsuarioID = &userID
		}
		if err := h.Repository.Criar(h.DB, &c); err != nil {
			utils.ErroInterno(w, r, "erro ao criar comentário", err)
			return
		}
		out, err := toDTOs(h.DB, []Comentario{c})
		if err != nil {
			utils.ErroInterno(w, r, "erro ao criar comentário", err)
			return
		}
		utils.ResponderJSON(w, http.StatusCreated, out[0])
	}
}

// podeAlterar: só o autor ou um administrador; comentários do sistema são imutáveis
func podeAlterar(r *http.Request, c *Comentario) bool {
	if c.Sistema {
		return false
	}
	if auth.IsAdmin(r.Context()) {
		return true
	}
	return c.UsuarioID != nil && *c.UsuarioID == auth.UsuarioID(r.Context())
}

// PUT /comentarios/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req CriarComentarioRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "comentário não encontrado", "erro ao buscar comentário", err)
		return
	}
	if !podeAlterar(r, c) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if err := h.Repository.Atualizar(h.DB, id, req.Texto); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar comentário", err)
		return
	}
	c.Texto = req.Texto
	out, err := toDTOs(h.DB, []Comentario{*c})
	if err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar comentário", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, out[0])
}

// DELETE /comentarios/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "comentário não encontrado", "erro ao buscar comentário", err)
		return
	}
	if !podeAlterar(r, c) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if err := h.Repository.Remover(h.DB, id); err != nil {
		utils.ErroInterno(w, r, "erro ao remover comentário", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
