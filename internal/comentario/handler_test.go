package comentario

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/KromaEnergia/api-erp/internal/auth"
	"github.com/KromaEnergia/api-erp/internal/usuario"
	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ordemFake struct {
	ID uint
}

func (ordemFake) TableName() string { return "ordens_servico" }

func setup(t *testing.T) (*gorm.DB, *mux.Router) {
	t.Helper()
	database := testutil.NewDB(t, &Comentario{}, &ordemFake{}, &usuario.Usuario{})
	require.NoError(t, database.Create(&ordemFake{ID: 1}).Error)
	require.NoError(t, database.Create(&usuario.Usuario{ID: 5, Nome: "Carla", Email: "carla@x.com", Senha: "x", Ativo: true}).Error)

	h := NewHandler(database)
	r := mux.NewRouter()
	r.HandleFunc("/ordens-servico/{id}/comentarios", h.ListarPor(RefOrdemServico)).Methods(http.MethodGet)
	r.HandleFunc("/ordens-servico/{id}/comentarios", h.CriarPara(RefOrdemServico)).Methods(http.MethodPost)
	r.HandleFunc("/comentarios/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/comentarios/{id}", h.Remover).Methods(http.MethodDelete)
	return database, r
}

func como(req *http.Request, userID uint, admin bool) *http.Request {
	return req.WithContext(auth.WithUsuario(req.Context(), userID, admin))
}

func TestComentarios(t *testing.T) {
	database, r := setup(t)
	require.NoError(t, RegistrarSistema(database, RefOrdemServico, 1, "Status alterado para EmAndamento"))

	req := testutil.NewRequest(t, http.MethodPost, "/ordens-servico/1/comentarios", CriarComentarioRequest{Texto: "Cliente pediu orçamento extra"})
	rec := testutil.Serve(r, como(req, 5, false))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	criado := testutil.DecodeJSON[ComentarioDTO](t, rec)
	assert.Equal(t, "Carla", criado.Autor.Nome)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/ordens-servico/1/comentarios", nil))
	list := testutil.DecodeJSON[[]ComentarioDTO](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "sistema", list[0].Autor.Tipo)
	assert.Equal(t, "usuario", list[1].Autor.Tipo)

	path := "/comentarios/" + strconv.Itoa(int(criado.ID))
	req = testutil.NewRequest(t, http.MethodPut, path, CriarComentarioRequest{Texto: "outro"})
	assert.Equal(t, http.StatusForbidden, testutil.Serve(r, como(req, 6, false)).Code)

	req = testutil.NewRequest(t, http.MethodPut, path, CriarComentarioRequest{Texto: "Cliente pediu orçamento"})
	rec = testutil.Serve(r, como(req, 5, false))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cliente pediu orçamento", testutil.DecodeJSON[ComentarioDTO](t, rec).Texto)

	sistemaPath := "/comentarios/" + strconv.Itoa(int(list[0].ID))
	req = testutil.NewRequest(t, http.MethodDelete, sistemaPath, nil)
	assert.Equal(t, http.StatusForbidden, testutil.Serve(r, como(req, 1, true)).Code)

	req = testutil.NewRequest(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, testutil.Serve(r, como(req, 1, true)).Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/ordens-servico/1/comentarios", nil))
	assert.Len(t, testutil.DecodeJSON[[]ComentarioDTO](t, rec), 1)
}

func TestCriar_ReferenciaInexistente(t *testing.T) {
	_, r := setup(t)
	req := testutil.NewRequest(t, http.MethodPost, "/ordens-servico/99/comentarios", CriarComentarioRequest{Texto: "x"})
	assert.Equal(t, http.StatusNotFound, testutil.Serve(r, como(req, 5, false)).Code)

	req = testutil.NewRequest(t, http.MethodPost, "/ordens-servico/1/comentarios", CriarComentarioRequest{})
	assert.Equal(t, http.StatusBadRequest, testutil.Serve(r, como(req, 5, false)).Code)
}
