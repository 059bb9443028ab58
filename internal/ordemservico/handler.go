package ordemservico

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/financeiro"
	"github.com/KromaEnergia/api-erp/internal/utils"
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

func (h *Handler) responderErro(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, cliente.ErrClienteInvalido), errors.Is(err, ErrStatusDesconhecido):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrTransicaoInvalida), errors.Is(err, ErrFinalizada):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		utils.ErroBanco(w, r, "ordem de serviço não encontrada", msg, err)
	}
}

// GET /ordens-servico?status=&clienteId=&busca=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.UintQuery(r, "clienteId")
	if err != nil {
		http.Error(w, "parâmetro 'clienteId' inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.Listar(h.DB, Filtro{
		Status:          r.URL.Query().Get("status"),
		ClienteID:       clienteID,
		Busca:           r.URL.Query().Get("busca"),
		IncluirInativos: utils.IncluirInativos(r),
	})
	if err != nil {
		utils.ErroInterno(w, r, "erro ao listar ordens de serviço", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /ordens-servico
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req OrdemServicoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := req.conferir(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var o OrdemServico
	req.aplicar(&o)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := cliente.ConferirAtivo(tx, o.ClienteID); err != nil {
			return err
		}
		return h.Repository.Criar(tx, &o, h.Agora())
	})
	if err != nil {
		h.responderErro(w, r, "erro ao salvar ordem de serviço", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, o)
}

// GET /ordens-servico/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "ordem de serviço não encontrada", "erro ao buscar ordem de serviço", err)
		return
	}
	comentarios, err := comentario.Listar(h.DB, comentario.RefOrdemServico, o.ID)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao buscar comentários", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, OrdemServicoDetalhe{OrdemServico: o, Comentarios: comentarios})
}

// PUT /ordens-servico/{id}
// Os itens enviados substituem os atuais.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req OrdemServicoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := req.conferir(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var o *OrdemServico
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if o, err = h.Repository.Travar(tx, id); err != nil {
			return err
		}
		if o.Finalizada() {
			return ErrFinalizada
		}
		if o.ClienteID != req.ClienteID {
			if err := cliente.ConferirAtivo(tx, req.ClienteID); err != nil {
				return err
			}
		}
		req.aplicar(o)
		o.Cliente = nil
		return h.Repository.Atualizar(tx, o)
	})
	if err != nil {
		h.responderErro(w, r, "erro ao atualizar ordem de serviço", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, o)
}

// PATCH /ordens-servico/{id}/status
// Toda mudança vai para o histórico; concluir gera a receita pendente do valor total.
func (h *Handler) MudarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req StatusRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}

	agora := h.Agora()
	var o *OrdemServico
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if o, err = h.Repository.Travar(tx, id); err != nil {
			return err
		}
		anterior := o.Status
		if err := o.MudarStatus(req.Status, agora); err != nil {
			return err
		}
		err = tx.Model(&OrdemServico{}).Where("id = ?", o.ID).Updates(map[string]any{
			"status":         o.Status,
			"data_conclusao": o.DataConclusao,
		}).Error
		if err != nil {
			return err
		}
		texto := fmt.Sprintf("Status alterado de %s para %s", anterior, o.Status)
		if err := comentario.RegistrarSistema(tx, comentario.RefOrdemServico, o.ID, texto); err != nil {
			return err
		}
		if o.Status == StatusConcluida && o.ValorTotal.IsPositive() {
			l := financeiro.NovaReceitaPendente("Ordem de serviço", "Ordem de serviço "+o.Numero, o.ValorTotal,
				utils.Dia(agora), financeiro.Origem{ClienteID: &o.ClienteID, OrdemServicoID: &o.ID})
			return financeiro.NewRepository().Criar(tx, &l)
		}
		return nil
	})
	if err != nil {
		h.responderErro(w, r, "erro ao alterar status", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, o)
}

// DELETE /ordens-servico/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.Desativar(h.DB, id); err != nil {
		utils.ErroBanco(w, r, "ordem de serviço não encontrada", "erro ao excluir ordem de serviço", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
