package cliente

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/KromaEnergia/api-erp/internal/models"
	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificadorFake struct {
	duplicados []string
}

func (n *notificadorFake) DocumentoDuplicado(_ context.Context, _ string, documento string) {
	n.duplicados = append(n.duplicados, documento)
}

func (n *notificadorFake) PropostaAprovada(context.Context, string, uint, decimal.Decimal) {}

func setup(t *testing.T) (*mux.Router, *notificadorFake) {
	t.Helper()
	database := testutil.NewDB(t, &Cliente{})
	n := &notificadorFake{}
	h := NewHandler(database, n)

	r := mux.NewRouter()
	r.HandleFunc("/clientes", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/clientes", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/clientes/exportar", h.Exportar).Methods(http.MethodGet)
	r.HandleFunc("/clientes/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/clientes/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/clientes/{id}", h.Deletar).Methods(http.MethodDelete)
	return r, n
}

func novoCliente() ClienteRequest {
	return ClienteRequest{
		Nome:       "Padaria Pão Quente",
		TipoPessoa: PessoaJuridica,
		Documento:  "11.222.333/0001-81",
		Email:      "contato@paoquente.com.br",
		Endereco:   models.Endereco{CEP: "01310-100", Cidade: "São Paulo", UF: "sp"},
	}
}

func TestCRUDRoundTrip(t *testing.T) {
	r, _ := setup(t)

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", novoCliente()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	criado := testutil.DecodeJSON[Cliente](t, rec)
	assert.Equal(t, "11222333000181", criado.Documento)
	assert.Equal(t, "01310100", criado.CEP)
	assert.Equal(t, "SP", criado.UF)
	assert.True(t, criado.Ativo)

	path := "/clientes/" + strconv.Itoa(int(criado.ID))
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	lido := testutil.DecodeJSON[Cliente](t, rec)
	assert.Equal(t, criado.Nome, lido.Nome)
	assert.Equal(t, criado.Email, lido.Email)
	assert.Equal(t, criado.Cidade, lido.Cidade)

	req := novoCliente()
	req.Nome = "Padaria Pão Quente Ltda"
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, path, req))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Padaria Pão Quente Ltda", testutil.DecodeJSON[Cliente](t, rec).Nome)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/clientes", nil))
	assert.Empty(t, testutil.DecodeJSON[[]Cliente](t, rec))

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/clientes?inativos=true", nil))
	assert.Len(t, testutil.DecodeJSON[[]Cliente](t, rec), 1)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, path, nil))
	assert.Equal(t, http.StatusOK, rec.Code, "inativo continua acessível por id")
}

func TestCriar_DocumentoDuplicado(t *testing.T) {
	r, n := setup(t)

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", novoCliente()))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", novoCliente()))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []string{"11222333000181"}, n.duplicados)
}

func TestCriar_Validacao(t *testing.T) {
	r, _ := setup(t)

	req := novoCliente()
	req.Nome = ""
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = novoCliente()
	req.TipoPessoa = PessoaFisica
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CPF")
}

func TestBusca(t *testing.T) {
	r, _ := setup(t)

	a := novoCliente()
	b := ClienteRequest{Nome: "Maria Souza", TipoPessoa: PessoaFisica, Documento: "529.982.247-25"}
	testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", a))
	testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", b))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/clientes?busca=maria", nil))
	list := testutil.DecodeJSON[[]Cliente](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Maria Souza", list[0].Nome)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/clientes?busca=52998", nil))
	assert.Len(t, testutil.DecodeJSON[[]Cliente](t, rec), 1)
}

func TestExportar(t *testing.T) {
	r, _ := setup(t)
	testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/clientes", novoCliente()))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/clientes/exportar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Padaria Pão Quente;PJ;11222333000181")

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/clientes/exportar?formato=xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=clientes.xlsx", rec.Header().Get("Content-Disposition"))

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/clientes/exportar?formato=doc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
