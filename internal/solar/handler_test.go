package solar

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/proposta"
	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *mux.Router) {
	t.Helper()
	database := testutil.NewDB(t, &cliente.Cliente{}, &PainelSolar{}, &Inversor{}, &ProjetoSolar{},
		&proposta.PropostaComercial{}, &proposta.ItemProposta{}, &proposta.ParcelaProposta{}, &comentario.Comentario{})
	require.NoError(t, database.Create(&cliente.Cliente{ID: 1, Nome: "Ana", TipoPessoa: cliente.PessoaFisica, Ativo: true}).Error)

	paineis, inversores, err := SemearCatalogo(database)
	require.NoError(t, err)
	require.Equal(t, 4, paineis)
	require.Equal(t, 4, inversores)

	h := NewHandler(database)
	h.Agora = func() time.Time { return time.Date(2026, 5, 10, 10, 0, 0, 0, time.Local) }
	h.Padroes = func(ctx context.Context) Padroes {
		return Padroes{TarifaKWh: 0.9, IrradiacaoKWhM2Dia: 5, TarifaFioB: 0.25, DiasValidadeProposta: 10}
	}

	r := mux.NewRouter()
	r.HandleFunc("/solar/paineis", h.ListarPaineis).Methods(http.MethodGet)
	r.HandleFunc("/solar/paineis", h.CriarPainel).Methods(http.MethodPost)
	r.HandleFunc("/solar/paineis/{id}", h.AtualizarPainel).Methods(http.MethodPut)
	r.HandleFunc("/solar/paineis/{id}", h.DeletarPainel).Methods(http.MethodDelete)
	r.HandleFunc("/solar/inversores", h.ListarInversores).Methods(http.MethodGet)
	r.HandleFunc("/solar/inversores", h.CriarInversor).Methods(http.MethodPost)
	r.HandleFunc("/solar/calcular", h.Calcular).Methods(http.MethodPost)
	r.HandleFunc("/solar/projetos", h.ListarProjetos).Methods(http.MethodGet)
	r.HandleFunc("/solar/projetos", h.CriarProjeto).Methods(http.MethodPost)
	r.HandleFunc("/solar/projetos/{id}", h.BuscarProjeto).Methods(http.MethodGet)
	r.HandleFunc("/solar/projetos/{id}", h.AtualizarProjeto).Methods(http.MethodPut)
	r.HandleFunc("/solar/projetos/{id}", h.DeletarProjeto).Methods(http.MethodDelete)
	r.HandleFunc("/solar/projetos/{id}/balanco", h.Balanco).Methods(http.MethodGet)
	r.HandleFunc("/solar/projetos/{id}/gerar-proposta", h.GerarProposta).Methods(http.MethodPost)
	return database, r
}

func uintPtr(v uint) *uint { return &v }

func projetoRequest() ProjetoRequest {
	return ProjetoRequest{
		Nome:       "Residência Ana",
		ClienteID:  1,
		PainelID:   uintPtr(1),
		InversorID: uintPtr(2),
		Parametros: Parametros{
			ConsumoMensalKWh:          500,
			FatorSimultaneidade:       0.3,
			CustoInstalacaoPercentual: 20,
		},
	}
}

func TestSemearCatalogo_SoUmaVez(t *testing.T) {
	database, _ := setup(t)
	p, i, err := SemearCatalogo(database)
	require.NoError(t, err)
	assert.Zero(t, p)
	assert.Zero(t, i)
}

func TestCatalogoCRUD(t *testing.T) {
	_, r := setup(t)

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/paineis", PainelRequest{
		Fabricante: "Risen", Modelo: "RSM110 600W", PotenciaW: 600, AreaM2: 2.8, Preco: decimal.NewFromInt(990),
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	novo := testutil.DecodeJSON[PainelSolar](t, rec)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/paineis", PainelRequest{Fabricante: "X", Modelo: "Y"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/solar/paineis?busca=risen", nil))
	require.Len(t, testutil.DecodeJSON[[]PainelSolar](t, rec), 1)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, "/solar/paineis/"+strconv.Itoa(int(novo.ID)), nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/solar/paineis", nil))
	assert.Len(t, testutil.DecodeJSON[[]PainelSolar](t, rec), 4)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/inversores", InversorRequest{
		Fabricante: "Deye", Modelo: "SUN-10K", PotenciaKW: 10, Fases: 4,
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcularEndpoint(t *testing.T) {
	_, r := setup(t)

	req := CalculoRequest{PainelID: uintPtr(1), InversorID: uintPtr(2), Parametros: projetoRequest().Parametros}
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/calcular", req))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := testutil.DecodeJSON[Resultado](t, rec)
	assert.Equal(t, 8, res.QuantidadePaineis)
	assert.Equal(t, 1, res.QuantidadeInversores)
	assert.InDelta(t, 13704, res.InvestimentoTotal, 0.001)
	assert.InDelta(t, 20.64, res.AreaNecessariaM2, 0.001)
	assert.Len(t, res.Balanco, 12)

	req.Parametros.ConsumoMensalKWh = 0
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/calcular", req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = CalculoRequest{PainelID: uintPtr(99), Parametros: projetoRequest().Parametros}
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/calcular", req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjetoEProposta(t *testing.T) {
	database, r := setup(t)

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/projetos", projetoRequest()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := testutil.DecodeJSON[ProjetoSolar](t, rec)
	assert.Equal(t, Bifasico, p.Parametros.TipoLigacao)
	assert.Equal(t, 2026, p.Parametros.AnoReferencia)
	assert.InDelta(t, 13704, p.Resultado.InvestimentoTotal, 0.001)
	assert.Empty(t, p.Resultado.Balanco)
	path := "/solar/projetos/" + strconv.Itoa(int(p.ID))

	var salvo ProjetoSolar
	require.NoError(t, database.First(&salvo, p.ID).Error)
	assert.Equal(t, 8, salvo.Resultado.QuantidadePaineis)
	assert.InDelta(t, 0.9, salvo.Parametros.TarifaKWh, 1e-9)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, path+"/balanco", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeJSON[Resultado](t, rec).Balanco, 12)

	upd := projetoRequest()
	upd.Parametros.ConsumoMensalKWh = 1000
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, path, upd))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 16, testutil.DecodeJSON[ProjetoSolar](t, rec).Resultado.QuantidadePaineis)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, path, projetoRequest()))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, path+"/gerar-proposta", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pc := testutil.DecodeJSON[proposta.PropostaComercial](t, rec)
	assert.Equal(t, "PC-2026-0001", pc.Numero)
	assert.Equal(t, proposta.ModoAVista, pc.ModoPagamento)
	assert.True(t, pc.ValorTotal.Equal(decimal.NewFromInt(13704)), pc.ValorTotal.String())
	require.Len(t, pc.Itens, 3)
	assert.True(t, pc.Itens[0].ValorTotal.Equal(decimal.NewFromInt(7120)))
	assert.True(t, pc.Itens[1].ValorTotal.Equal(decimal.NewFromInt(4300)))
	assert.True(t, pc.Itens[2].ValorTotal.Equal(decimal.NewFromInt(2284)))
	require.Len(t, pc.Parcelas, 1)
	require.NotNil(t, pc.ProjetoSolarID)
	assert.Equal(t, p.ID, *pc.ProjetoSolarID)
	assert.Equal(t, "2026-05-20", pc.Validade.In(time.Local).Format("2006-01-02"))

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, path+"/gerar-proposta", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, path, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/solar/projetos", nil))
	assert.Empty(t, testutil.DecodeJSON[[]ProjetoSolar](t, rec))
}

func TestProjeto_ClienteInvalido(t *testing.T) {
	_, r := setup(t)
	req := projetoRequest()
	req.ClienteID = 42
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/solar/projetos", req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
