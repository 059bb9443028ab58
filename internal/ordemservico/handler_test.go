package ordemservico

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/financeiro"
	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*gorm.DB, *mux.Router) {
	t.Helper()
	database := testutil.NewDB(t, &cliente.Cliente{}, &OrdemServico{}, &ItemOrdemServico{},
		&comentario.Comentario{}, &financeiro.LancamentoFinanceiro{})
	require.NoError(t, database.Create(&cliente.Cliente{ID: 1, Nome: "Ana", TipoPessoa: cliente.PessoaFisica, Ativo: true}).Error)
	require.NoError(t, database.Create(&cliente.Cliente{ID: 2, Nome: "Inativo", TipoPessoa: cliente.PessoaFisica, Ativo: false}).Error)

	h := NewHandler(database)
	h.Agora = func() time.Time { return time.Date(2026, 5, 10, 10, 0, 0, 0, time.Local) }

	r := mux.NewRouter()
	r.HandleFunc("/ordens-servico", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/ordens-servico", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/ordens-servico/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/ordens-servico/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/ordens-servico/{id}", h.Deletar).Methods(http.MethodDelete)
	r.HandleFunc("/ordens-servico/{id}/status", h.MudarStatus).Methods(http.MethodPatch)
	return database, r
}

func novaOS() OrdemServicoRequest {
	return OrdemServicoRequest{
		ClienteID:       1,
		Equipamento:     "Inversor 5kW",
		DefeitoRelatado: "Não liga",
		Desconto:        dec("20"),
		Itens: []ItemRequest{
			{Tipo: ItemServico, Descricao: "Mão de obra", Quantidade: dec("2"), ValorUnitario: dec("150")},
			{Tipo: ItemPeca, Descricao: "Fusível", Quantidade: dec("3"), ValorUnitario: dec("10.50")},
		},
	}
}

func criar(t *testing.T, r *mux.Router) OrdemServico {
	t.Helper()
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/ordens-servico", novaOS()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return testutil.DecodeJSON[OrdemServico](t, rec)
}

func patchStatus(t *testing.T, r *mux.Router, id uint, status string) int {
	t.Helper()
	path := "/ordens-servico/" + strconv.Itoa(int(id)) + "/status"
	return testutil.Serve(r, testutil.NewRequest(t, http.MethodPatch, path, StatusRequest{Status: status})).Code
}

func TestCriar_TotaisENumeracao(t *testing.T) {
	_, r := setup(t)

	o := criar(t, r)
	assert.Equal(t, "OS-2026-0001", o.Numero)
	assert.Equal(t, StatusAberta, o.Status)
	assert.True(t, o.ValorServicos.Equal(dec("300")), o.ValorServicos.String())
	assert.True(t, o.ValorPecas.Equal(dec("31.50")), o.ValorPecas.String())
	assert.True(t, o.ValorTotal.Equal(dec("311.50")), o.ValorTotal.String())
	require.Len(t, o.Itens, 2)
	assert.True(t, o.Itens[1].ValorTotal.Equal(dec("31.50")))

	assert.Equal(t, "OS-2026-0002", criar(t, r).Numero)
}

func TestCriar_ClienteInvalido(t *testing.T) {
	_, r := setup(t)
	req := novaOS()
	req.ClienteID = 2
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/ordens-servico", req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = novaOS()
	req.Itens[0].Quantidade = decimal.Zero
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPost, "/ordens-servico", req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuscarEAtualizar(t *testing.T) {
	database, r := setup(t)
	o := criar(t, r)
	path := "/ordens-servico/" + strconv.Itoa(int(o.ID))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	det := testutil.DecodeJSON[struct {
		OrdemServico
		Comentarios []comentario.ComentarioDTO `json:"comentarios"`
	}](t, rec)
	require.NotNil(t, det.Cliente)
	assert.Equal(t, "Ana", det.Cliente.Nome)
	assert.Len(t, det.Itens, 2)
	require.Len(t, det.Comentarios, 1)
	assert.True(t, det.Comentarios[0].Sistema)

	req := novaOS()
	req.Desconto = decimal.Zero
	req.Itens = req.Itens[:1]
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, path, req))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	atualizada := testutil.DecodeJSON[OrdemServico](t, rec)
	assert.True(t, atualizada.ValorTotal.Equal(dec("300")))
	assert.True(t, atualizada.ValorPecas.IsZero())

	var itens int64
	require.NoError(t, database.Model(&ItemOrdemServico{}).Where("ordem_servico_id = ?", o.ID).Count(&itens).Error)
	assert.EqualValues(t, 1, itens)
}

func TestFluxoDeStatus(t *testing.T) {
	database, r := setup(t)
	o := criar(t, r)

	assert.Equal(t, http.StatusConflict, patchStatus(t, r, o.ID, StatusConcluida))
	assert.Equal(t, http.StatusBadRequest, patchStatus(t, r, o.ID, "Perdida"))
	assert.Equal(t, http.StatusOK, patchStatus(t, r, o.ID, StatusEmAndamento))
	assert.Equal(t, http.StatusOK, patchStatus(t, r, o.ID, StatusAguardandoPecas))
	assert.Equal(t, http.StatusOK, patchStatus(t, r, o.ID, StatusEmAndamento))
	assert.Equal(t, http.StatusOK, patchStatus(t, r, o.ID, StatusConcluida))
	assert.Equal(t, http.StatusConflict, patchStatus(t, r, o.ID, StatusCancelada))

	var salva OrdemServico
	require.NoError(t, database.First(&salva, o.ID).Error)
	assert.Equal(t, StatusConcluida, salva.Status)
	require.NotNil(t, salva.DataConclusao)

	var lancs []financeiro.LancamentoFinanceiro
	require.NoError(t, database.Find(&lancs).Error)
	require.Len(t, lancs, 1)
	assert.Equal(t, financeiro.TipoReceita, lancs[0].Tipo)
	assert.Equal(t, financeiro.StatusPendente, lancs[0].Status)
	assert.True(t, lancs[0].Valor.Equal(dec("311.50")))
	require.NotNil(t, lancs[0].OrdemServicoID)
	assert.Equal(t, o.ID, *lancs[0].OrdemServicoID)

	hist, err := comentario.Listar(database, comentario.RefOrdemServico, o.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 5)
	assert.Equal(t, "Status alterado de EmAndamento para Concluida", hist[4].Texto)

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, "/ordens-servico/"+strconv.Itoa(int(o.ID)), novaOS()))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListarEDeletar(t *testing.T) {
	_, r := setup(t)
	a := criar(t, r)
	b := criar(t, r)
	require.Equal(t, http.StatusOK, patchStatus(t, r, b.ID, StatusEmAndamento))

	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/ordens-servico?status=EmAndamento", nil))
	list := testutil.DecodeJSON[[]OrdemServico](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, "/ordens-servico/"+strconv.Itoa(int(a.ID)), nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/ordens-servico?clienteId=1", nil))
	assert.Len(t, testutil.DecodeJSON[[]OrdemServico](t, rec), 1)
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodGet, "/ordens-servico?inativos=true", nil))
	assert.Len(t, testutil.DecodeJSON[[]OrdemServico](t, rec), 2)

	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, "/ordens-servico/999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalcularTotais_DescontoMaiorQueTotal(t *testing.T) {
	o := OrdemServico{
		Desconto: dec("500"),
		Itens:    []ItemOrdemServico{{Tipo: ItemServico, Quantidade: dec("1"), ValorUnitario: dec("100")}},
	}
	o.CalcularTotais()
	assert.True(t, o.ValorTotal.IsZero())
}

func TestOSDesativada_NaoMudaMais(t *testing.T) {
	database, r := setup(t)
	o := criar(t, r)
	require.Equal(t, http.StatusOK, patchStatus(t, r, o.ID, StatusEmAndamento))

	path := "/ordens-servico/" + strconv.Itoa(int(o.ID))
	rec := testutil.Serve(r, testutil.NewRequest(t, http.MethodDelete, path, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, patchStatus(t, r, o.ID, StatusConcluida))
	rec = testutil.Serve(r, testutil.NewRequest(t, http.MethodPut, path, novaOS()))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var salva OrdemServico
	require.NoError(t, database.First(&salva, o.ID).Error)
	assert.Equal(t, StatusEmAndamento, salva.Status)
	assert.Nil(t, salva.DataConclusao)

	var receitas int64
	require.NoError(t, database.Model(&financeiro.LancamentoFinanceiro{}).Count(&receitas).Error)
	assert.Zero(t, receitas)
}

func TestConcluirDuasVezes_UmaReceita(t *testing.T) {
	database, r := setup(t)
	o := criar(t, r)
	require.Equal(t, http.StatusOK, patchStatus(t, r, o.ID, StatusEmAndamento))
	require.Equal(t, http.StatusOK, patchStatus(t, r, o.ID, StatusConcluida))
	assert.Equal(t, http.StatusConflict, patchStatus(t, r, o.ID, StatusConcluida))

	var receitas int64
	require.NoError(t, database.Model(&financeiro.LancamentoFinanceiro{}).Count(&receitas).Error)
	assert.Equal(t, int64(1), receitas)
}
