package financeiro

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dia(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) *mux.Router {
	t.Helper()
	h := NewHandler(testutil.NewDB(t, &LancamentoFinanceiro{}))
	h.Agora = func() time.Time { return dia(2026, 3, 15) }

	r := mux.NewRouter()
	r.HandleFunc("/financeiro/lancamentos", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/financeiro/lancamentos", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/financeiro/lancamentos/exportar", h.Exportar).Methods(http.MethodGet)
	r.HandleFunc("/financeiro/lancamentos/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/financeiro/lancamentos/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/financeiro/lancamentos/{id}", h.Deletar).Methods(http.MethodDelete)
	r.HandleFunc("/financeiro/lancamentos/{id}/pagar", h.Pagar).Methods(http.MethodPost)
	r.HandleFunc("/financeiro/lancamentos/{id}/cancelar", h.Cancelar).Methods(http.MethodPost)
	r.HandleFunc("/financeiro/resumo", h.Resumo).Methods(http.MethodGet)
	return r
}

func criar(t *testing.T, r *mux.Router, tipo, valor string, venc time.Time) LancamentoFinanceiro {
	t.Helper()
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/financeiro/lancamentos", LancamentoRequest{
		Tipo: tipo, Descricao: tipo + " " + valor, Valor: dec(valor), DataVencimento: utils.NovaData(venc),
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return testutil.DecodeJSON[LancamentoFinanceiro](t, rec)
}

func TestLancamentoFluxo(t *testing.T) {
	r := setup(t)
	l := criar(t, r, TipoReceita, "1000", dia(2026, 3, 10))
	assert.Equal(t, StatusPendente, l.Status)
	path := "/financeiro/lancamentos/" + strconv.Itoa(int(l.ID))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, path+"/pagar", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pago := testutil.DecodeJSON[LancamentoFinanceiro](t, rec)
	assert.Equal(t, StatusPago, pago.Status)
	require.NotNil(t, pago.DataPagamento)
	assert.Equal(t, 15, pago.DataPagamento.Day())

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, path+"/cancelar", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, path, LancamentoRequest{
		Tipo: TipoReceita, Descricao: "x", Valor: dec("1"), DataVencimento: utils.NovaData(dia(2026, 3, 1)),
	}))
	assert.Equal(t, http.StatusConflict, rec.Code, "pago não pode ser editado")
}

func TestPagarComData(t *testing.T) {
	r := setup(t)
	l := criar(t, r, TipoDespesa, "250.00", dia(2026, 3, 20))
	data := utils.NovaData(dia(2026, 3, 18))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/financeiro/lancamentos/"+strconv.Itoa(int(l.ID))+"/pagar",
		PagarRequest{DataPagamento: &data, FormaPagamento: "PIX"}))
	require.Equal(t, http.StatusOK, rec.Code)
	pago := testutil.DecodeJSON[LancamentoFinanceiro](t, rec)
	assert.Equal(t, 18, pago.DataPagamento.Day())
	assert.Equal(t, "PIX", pago.FormaPagamento)
}

func TestCriar_Validacao(t *testing.T) {
	r := setup(t)
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/financeiro/lancamentos", LancamentoRequest{
		Tipo: TipoReceita, Descricao: "x", Valor: dec("0"), DataVencimento: utils.NovaData(dia(2026, 3, 1)),
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/financeiro/lancamentos", LancamentoRequest{
		Tipo: "Outro", Descricao: "x", Valor: dec("1"), DataVencimento: utils.NovaData(dia(2026, 3, 1)),
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListarFiltros(t *testing.T) {
	r := setup(t)
	criar(t, r, TipoReceita, "100", dia(2026, 2, 10))
	criar(t, r, TipoReceita, "200", dia(2026, 3, 10))
	d := criar(t, r, TipoDespesa, "50", dia(2026, 3, 31))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/financeiro/lancamentos?de=2026-03-01&ate=2026-03-31", nil))
	assert.Len(t, testutil.DecodeJSON[[]LancamentoFinanceiro](t, rec), 2)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/financeiro/lancamentos?tipo=Receita", nil))
	assert.Len(t, testutil.DecodeJSON[[]LancamentoFinanceiro](t, rec), 2)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, "/financeiro/lancamentos/"+strconv.Itoa(int(d.ID)), nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/financeiro/lancamentos", nil))
	assert.Len(t, testutil.DecodeJSON[[]LancamentoFinanceiro](t, rec), 2)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/financeiro/lancamentos?de=ontem", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/financeiro/lancamentos/exportar?formato=csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Receita;;Receita 200;200.00")
}

func TestMontarResumo(t *testing.T) {
	pago := dia(2026, 3, 5)
	lancs := []LancamentoFinanceiro{
		{Tipo: TipoReceita, Valor: dec("1000"), DataVencimento: dia(2026, 3, 1), Status: StatusPago, DataPagamento: &pago, Ativo: true},
		{Tipo: TipoReceita, Valor: dec("500"), DataVencimento: dia(2026, 3, 10), Status: StatusPendente, Ativo: true},
		{Tipo: TipoDespesa, Valor: dec("300"), DataVencimento: dia(2026, 3, 20), Status: StatusPendente, Ativo: true},
		{Tipo: TipoDespesa, Valor: dec("999"), DataVencimento: dia(2026, 3, 20), Status: StatusCancelado, Ativo: true},
		{Tipo: TipoReceita, Valor: dec("700"), DataVencimento: dia(2026, 4, 2), Status: StatusPendente, Ativo: true},
	}
	de, ate := dia(2026, 3, 1), dia(2026, 3, 31)

	res := MontarResumo(lancs, &de, &ate, dia(2026, 3, 15))
	assert.Equal(t, "1500", res.ReceitasPrevistas.String())
	assert.Equal(t, "1000", res.ReceitasRealizadas.String())
	assert.Equal(t, "300", res.DespesasPrevistas.String())
	assert.True(t, res.DespesasRealizadas.IsZero())
	assert.Equal(t, "1200", res.SaldoPrevisto.String())
	assert.Equal(t, "1000", res.SaldoRealizado.String())
	assert.Equal(t, 1, res.QuantidadeVencidos)
	assert.Equal(t, "500", res.ValorVencido.String())
}

func TestResumoHandler(t *testing.T) {
	r := setup(t)
	criar(t, r, TipoReceita, "100", dia(2026, 3, 1))
	criar(t, r, TipoDespesa, "40", dia(2026, 3, 20))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/financeiro/resumo?de=2026-03-01&ate=2026-03-31", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	res := testutil.DecodeJSON[ResumoDTO](t, rec)
	assert.True(t, res.SaldoPrevisto.Equal(dec("60")))
	assert.Equal(t, 1, res.QuantidadeVencidos)
}
