package produto

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *mux.Router {
	t.Helper()
	h := NewHandler(NewRepository(testutil.NewDB(t, &Produto{})))

	r := mux.NewRouter()
	r.HandleFunc("/produtos", h.ListProdutos).Methods(http.MethodGet)
	r.HandleFunc("/produtos", h.CreateProduto).Methods(http.MethodPost)
	r.HandleFunc("/produtos/{id}", h.GetProduto).Methods(http.MethodGet)
	r.HandleFunc("/produtos/{id}", h.UpdateProduto).Methods(http.MethodPut)
	r.HandleFunc("/produtos/{id}", h.DeleteProduto).Methods(http.MethodDelete)
	return r
}

func TestProdutoCRUD(t *testing.T) {
	r := setup(t)
	body := ProdutoRequest{
		Codigo:     "CAB-6MM",
		Descricao:  "Cabo solar 6mm",
		Unidade:    "M",
		PrecoCusto: decimal.RequireFromString("4.10"),
		PrecoVenda: decimal.RequireFromString("7.999"),
		Estoque:    500,
	}

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/produtos", body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := testutil.DecodeJSON[Produto](t, rec)
	assert.True(t, p.PrecoVenda.Equal(decimal.RequireFromString("8.00")))

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/produtos", body))
	assert.Equal(t, http.StatusConflict, rec.Code)

	path := "/produtos/" + strconv.Itoa(int(p.ID))
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	lido := testutil.DecodeJSON[Produto](t, rec)
	assert.Equal(t, "Cabo solar 6mm", lido.Descricao)
	assert.True(t, lido.PrecoCusto.Equal(decimal.RequireFromString("4.10")))
	assert.Equal(t, 500.0, lido.Estoque)

	body.Estoque = 420
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, path, body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 420.0, testutil.DecodeJSON[Produto](t, rec).Estoque)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/produtos?busca=cab-", nil))
	assert.Len(t, testutil.DecodeJSON[[]Produto](t, rec), 1)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/produtos", nil))
	assert.Empty(t, testutil.DecodeJSON[[]Produto](t, rec))
}

func TestProduto_PrecoNegativo(t *testing.T) {
	r := setup(t)
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/produtos", ProdutoRequest{
		Codigo: "X", Descricao: "X", PrecoVenda: decimal.NewFromInt(-1),
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMargemPercentual(t *testing.T) {
	p := Produto{PrecoCusto: decimal.NewFromInt(80), PrecoVenda: decimal.NewFromInt(100)}
	assert.Equal(t, "25", p.MargemPercentual().String())
	assert.True(t, Produto{}.MargemPercentual().IsZero())
}
