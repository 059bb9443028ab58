package usuario

import (
	"errors"
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

// POST /auth/login
// Valida email/senha, emite access token RS256 e seta refresh token em cookie httpOnly.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}

	user, err := h.Repository.FindByEmail(h.DB, req.Email)
	if err != nil || !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !user.Ativo {
		http.Error(w, "usuário inativo", http.StatusUnauthorized)
		return
	}

	access, err := auth.IssueTokensOnLogin(h.DB, w, user.ID, user.IsAdmin)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao gerar tokens", err)
		return
	}

	utils.ResponderJSON(w, http.StatusOK, LoginResponse{
		TokenResponse:         auth.NewTokenResponse(access),
		PrecisaRedefinirSenha: user.PrecisaRedefinirSenha,
	})
}

// POST /usuarios
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUsuarioRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}

	if _, err := h.Repository.FindByEmail(h.DB, req.Email); err == nil {
		http.Error(w, "email já cadastrado", http.StatusConflict)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao processar senha", err)
		return
	}

	u := Usuario{
		Nome:    req.Nome,
		Email:   req.Email,
		Senha:   hash,
		IsAdmin: req.IsAdmin,
		Ativo:   true,
	}
	if err := h.Repository.Save(h.DB, &u); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar usuário", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, u)
}

// GET /usuarios
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB, utils.IncluirInativos(r))
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar usuários", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// GET /usuarios/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "usuário não encontrado", "erro ao buscar usuário", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, u)
}

// PUT /usuarios/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req UpdateUsuarioRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if req.Email != nil {
		if outro, err := h.Repository.FindByEmail(h.DB, *req.Email); err == nil && outro.ID != id {
			http.Error(w, "email já cadastrado", http.StatusConflict)
			return
		}
	}

	u, err := h.Repository.Update(h.DB, id, &req)
	if err != nil {
		utils.ErroBanco(w, r, "usuário não encontrado", "erro ao atualizar usuário", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, u)
}

// DELETE /usuarios/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if id == auth.UsuarioID(r.Context()) {
		http.Error(w, "não é possível desativar o próprio usuário", http.StatusConflict)
		return
	}
	if err := h.Repository.Deactivate(h.DB, id); err != nil {
		utils.ErroBanco(w, r, "usuário não encontrado", "erro ao excluir usuário", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /usuarios/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Repository.FindByID(h.DB, auth.UsuarioID(r.Context()))
	if err != nil {
		utils.ErroBanco(w, r, "usuário não encontrado", "erro ao buscar usuário", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, u)
}

// POST /usuarios/{id}/senha-temporaria
// A senha gerada é devolvida uma única vez; o usuário deve trocá-la no próximo acesso.
func (h *Handler) SenhaTemporaria(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.FindByID(h.DB, id); err != nil {
		utils.ErroBanco(w, r, "usuário não encontrado", "erro ao buscar usuário", err)
		return
	}

	senha, err := utils.GerarSenhaTemporaria()
	if err != nil {
		utils.ErroInterno(w, r, "erro ao gerar senha", err)
		return
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao processar senha", err)
		return
	}
	if err := h.Repository.SetSenha(h.DB, id, hash, true); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar senha", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, SenhaTemporariaResponse{SenhaTemporaria: senha})
}

// PUT /usuarios/me/senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	var req AlterarSenhaRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}

	u, err := h.Repository.FindByID(h.DB, auth.UsuarioID(r.Context()))
	if err != nil {
		utils.ErroBanco(w, r, "usuário não encontrado", "erro ao buscar usuário", err)
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Atual) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashSenha(req.Nova)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao processar senha", err)
		return
	}
	if err := h.Repository.SetSenha(h.DB, u.ID, hash, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
			return
		}
		utils.ErroInterno(w, r, "erro ao salvar senha", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
