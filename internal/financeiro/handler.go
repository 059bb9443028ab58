package financeiro

import (
	"errors"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/KromaEnergia/api-erp/internal/utils/exportar"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Agora      func() time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Agora: time.Now}
}

func conferir(req *LancamentoRequest) error {
	if !req.Valor.IsPositive() {
		return errors.New("valor deve ser maior que zero")
	}
	if req.DataVencimento.IsZero() {
		return errors.New("campo 'dataVencimento' é obrigatório")
	}
	return nil
}

func filtro(r *http.Request) (Filtro, error) {
	f := Filtro{
		Tipo:            r.URL.Query().Get("tipo"),
		Status:          r.URL.Query().Get("status"),
		IncluirInativos: utils.IncluirInativos(r),
	}
	var err error
	if f.De, err = utils.DataQuery(r, "de"); err != nil {
		return f, errors.New("parâmetro 'de' inválido")
	}
	if f.Ate, err = utils.DataQuery(r, "ate"); err != nil {
		return f, errors.New("parâmetro 'ate' inválido")
	}
	if f.ClienteID, err = utils.UintQuery(r, "clienteId"); err != nil {
		return f, errors.New("parâmetro 'clienteId' inválido")
	}
	return f, nil
}

// GET /financeiro/lancamentos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f, err := filtro(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	list, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar lançamentos", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /financeiro/lancamentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req LancamentoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := conferir(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var l LancamentoFinanceiro
	req.aplicar(&l)
	l.Status = StatusPendente
	if err := h.Repository.Criar(h.DB, &l); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar lançamento", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, l)
}

// GET /financeiro/lancamentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	l, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "lançamento não encontrado", "erro ao buscar lançamento", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, l)
}

// PUT /financeiro/lancamentos/{id}
// Só lançamentos pendentes podem ser editados.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req LancamentoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := conferir(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "lançamento não encontrado", "erro ao buscar lançamento", err)
		return
	}
	if l.Status != StatusPendente {
		http.Error(w, ErrStatusInvalido.Error(), http.StatusConflict)
		return
	}
	req.aplicar(l)
	if err := h.Repository.Salvar(h.DB, l); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar lançamento", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, l)
}

// DELETE /financeiro/lancamentos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.Desativar(h.DB, id); err != nil {
		utils.ErroBanco(w, r, "lançamento não encontrado", "erro ao excluir lançamento", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /financeiro/lancamentos/{id}/pagar
func (h *Handler) Pagar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req PagarRequest
	if r.ContentLength != 0 && !utils.DecodificarJSON(w, r, &req) {
		return
	}
	data := utils.Dia(h.Agora())
	if p := req.DataPagamento.Ptr(); p != nil {
		data = *p
	}
	h.mudarStatus(w, r, id, func(l *LancamentoFinanceiro) error {
		return l.Pagar(data, req.FormaPagamento)
	})
}

// POST /financeiro/lancamentos/{id}/cancelar
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.mudarStatus(w, r, id, (*LancamentoFinanceiro).Cancelar)
}

func (h *Handler) mudarStatus(w http.ResponseWriter, r *http.Request, id uint, mudar func(*LancamentoFinanceiro) error) {
	l, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "lançamento não encontrado", "erro ao buscar lançamento", err)
		return
	}
	if err := mudar(l); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err := h.Repository.Salvar(h.DB, l); err != nil {
		utils.ErroInterno(w, r, "erro ao atualizar lançamento", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, l)
}

// GET /financeiro/resumo?de=&ate=
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	de, err := utils.DataQuery(r, "de")
	if err != nil {
		http.Error(w, "parâmetro 'de' inválido", http.StatusBadRequest)
		return
	}
	ate, err := utils.DataQuery(r, "ate")
	if err != nil {
		http.Error(w, "parâmetro 'ate' inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ParaResumo(h.DB)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao montar resumo", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, MontarResumo(list, de, ate, utils.Dia(h.Agora())))
}

// GET /financeiro/lancamentos/exportar?formato=csv|xlsx
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	formato, err := exportar.Formato(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, err := filtro(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	list, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar lançamentos", err)
		return
	}

	p := exportar.Planilha{
		Nome:      "Lancamentos",
		Cabecalho: []string{"ID", "Tipo", "Categoria", "Descrição", "Valor", "Vencimento", "Pagamento", "Status", "Forma de pagamento"},
	}
	for _, l := range list {
		p.Linhas = append(p.Linhas, []any{l.ID, l.Tipo, l.Categoria, l.Descricao, l.Valor, l.DataVencimento, l.DataPagamento, l.Status, l.FormaPagamento})
	}
	if err := exportar.Responder(w, formato, "lancamentos", p); err != nil {
		utils.ErroInterno(w, r, "erro ao exportar lançamentos", err)
	}
}
