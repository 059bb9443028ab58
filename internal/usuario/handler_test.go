package usuario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/KromaEnergia/api-erp/internal/auth"
	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/KromaEnergia/api-erp/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *mux.Router) {
	t.Helper()
	_, err := auth.Init(config.AuthConfig{KID: "t", Issuer: "erp", Audience: "erp-web"}, false)
	require.NoError(t, err)

	database, err := db.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&Usuario{}, &auth.RefreshToken{}))
	t.Cleanup(func() { _ = db.Close(database) })

	h := NewHandler(database)
	r := mux.NewRouter()
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/usuarios", h.List).Methods(http.MethodGet)
	r.HandleFunc("/usuarios", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/usuarios/me", h.Me).Methods(http.MethodGet)
	r.HandleFunc("/usuarios/me/senha", h.AlterarSenha).Methods(http.MethodPut)
	r.HandleFunc("/usuarios/{id}", h.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/usuarios/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/usuarios/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/usuarios/{id}/senha-temporaria", h.SenhaTemporaria).Methods(http.MethodPost)
	return database, r
}

func do(t *testing.T, r http.Handler, method, path string, body any, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(auth.WithUsuario(req.Context(), userID, true))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func criarUsuario(t *testing.T, database *gorm.DB, email, senha string, ativo bool) *Usuario {
	t.Helper()
	hash, err := utils.HashSenha(senha)
	require.NoError(t, err)
	u := &Usuario{Nome: "Teste", Email: email, Senha: hash, Ativo: true}
	require.NoError(t, NewRepository().Save(database, u))
	if !ativo {
		require.NoError(t, NewRepository().Deactivate(database, u.ID))
	}
	return u
}

func TestLogin(t *testing.T) {
	database, r := setup(t)
	criarUsuario(t, database, "ana@empresa.com", "senha-forte", true)
	criarUsuario(t, database, "inativo@empresa.com", "senha-forte", false)

	rec := do(t, r, http.MethodPost, "/auth/login", LoginRequest{Email: "ANA@empresa.com", Senha: "senha-forte"}, 0)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	rec = do(t, r, http.MethodPost, "/auth/login", LoginRequest{Email: "ana@empresa.com", Senha: "errada"}, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, r, http.MethodPost, "/auth/login", LoginRequest{Email: "inativo@empresa.com", Senha: "senha-forte"}, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCRUD(t *testing.T) {
	_, r := setup(t)

	rec := do(t, r, http.MethodPost, "/usuarios", CreateUsuarioRequest{Nome: "Bia", Email: "bia@empresa.com", Senha: "12345678"}, 1)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var u Usuario
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&u))
	assert.True(t, u.Ativo)
	assert.NotContains(t, rec.Body.String(), "senha\"")

	rec = do(t, r, http.MethodPost, "/usuarios", CreateUsuarioRequest{Nome: "Bia", Email: "bia@empresa.com", Senha: "12345678"}, 1)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, http.MethodPost, "/usuarios", CreateUsuarioRequest{Nome: "X", Email: "x@empresa.com", Senha: "curta"}, 1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	nome := "Beatriz"
	rec = do(t, r, http.MethodPut, "/usuarios/"+utoa(u.ID), UpdateUsuarioRequest{Nome: &nome}, 1)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/usuarios/"+utoa(u.ID), nil, 1)
	require.Equal(t, http.StatusOK, rec.Code)
	var got Usuario
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Beatriz", got.Nome)

	rec = do(t, r, http.MethodDelete, "/usuarios/"+utoa(u.ID), nil, 999)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, r, http.MethodGet, "/usuarios", nil, 1)
	var list []Usuario
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Empty(t, list)

	rec = do(t, r, http.MethodGet, "/usuarios?inativos=true", nil, 1)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 1)

	rec = do(t, r, http.MethodDelete, "/usuarios/12345", nil, 1)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_ProprioUsuario(t *testing.T) {
	database, r := setup(t)
	u := criarUsuario(t, database, "eu@empresa.com", "senha-forte", true)

	rec := do(t, r, http.MethodDelete, "/usuarios/"+utoa(u.ID), nil, u.ID)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSenhaTemporariaEAlteracao(t *testing.T) {
	database, r := setup(t)
	u := criarUsuario(t, database, "caio@empresa.com", "senha-antiga", true)

	rec := do(t, r, http.MethodPost, "/usuarios/"+utoa(u.ID)+"/senha-temporaria", nil, 1)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SenhaTemporariaResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.SenhaTemporaria, 12)

	atual, err := NewRepository().FindByID(database, u.ID)
	require.NoError(t, err)
	assert.True(t, atual.PrecisaRedefinirSenha)
	assert.True(t, utils.VerificarSenha(atual.Senha, resp.SenhaTemporaria))

	rec = do(t, r, http.MethodPut, "/usuarios/me/senha", AlterarSenhaRequest{Atual: "errada", Nova: "nova-senha-1"}, u.ID)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, r, http.MethodPut, "/usuarios/me/senha", AlterarSenhaRequest{Atual: resp.SenhaTemporaria, Nova: "nova-senha-1"}, u.ID)
	require.Equal(t, http.StatusNoContent, rec.Code)

	atual, err = NewRepository().FindByID(database, u.ID)
	require.NoError(t, err)
	assert.False(t, atual.PrecisaRedefinirSenha)
	assert.True(t, utils.VerificarSenha(atual.Senha, "nova-senha-1"))
}

func TestEnsureAdminELookup(t *testing.T) {
	database, _ := setup(t)

	u, criado, err := EnsureAdmin(database, "Admin", "admin@empresa.com", "hash1")
	require.NoError(t, err)
	assert.True(t, criado)

	_, criado, err = EnsureAdmin(database, "", "admin@empresa.com", "hash2")
	require.NoError(t, err)
	assert.False(t, criado)

	isAdmin, ok := Lookup(database, u.ID)
	assert.True(t, ok)
	assert.True(t, isAdmin)

	require.NoError(t, NewRepository().Deactivate(database, u.ID))
	_, ok = Lookup(database, u.ID)
	assert.False(t, ok)
}

func utoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
