package proposta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/financeiro"
	"github.com/KromaEnergia/api-erp/internal/notificacao"
	"github.com/KromaEnergia/api-erp/internal/ordemservico"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"gorm.io/gorm"
)

const ValidadePadraoDias = 15

type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Notificador notificacao.Notificador
	Agora       func() time.Time
	// DiasValidade vem da configuração da empresa
	DiasValidade func(ctx context.Context) int
}

func NewHandler(db *gorm.DB, n notificacao.Notificador) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Notificador:  n,
		Agora:        time.Now,
		DiasValidade: func(context.Context) int { return ValidadePadraoDias },
	}
}

func (h *Handler) responderErro(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, cliente.ErrClienteInvalido), errors.Is(err, ErrPlanoInvalido):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrStatusInvalido), errors.Is(err, ErrExpirada),
		errors.Is(err, ErrSemItens), errors.Is(err, ErrJaConvertida):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		utils.ErroBanco(w, r, "proposta não encontrada", msg, err)
	}
}

// GET /propostas?status=&clienteId=&busca=
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
		utils.ErroInterno(w, r, "erro ao listar propostas", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// POST /propostas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req PropostaRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := req.conferir(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	agora := h.Agora()
	var p PropostaComercial
	req.aplicar(&p, utils.Dia(agora), h.DiasValidade(r.Context()))
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := cliente.ConferirAtivo(tx, p.ClienteID); err != nil {
			return err
		}
		return h.Repository.Criar(tx, &p, agora)
	})
	if err != nil {
		h.responderErro(w, r, "erro ao salvar proposta", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// GET /propostas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		utils.ErroBanco(w, r, "proposta não encontrada", "erro ao buscar proposta", err)
		return
	}
	comentarios, err := comentario.Listar(h.DB, comentario.RefProposta, p.ID)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao buscar comentários", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, PropostaDetalhe{PropostaComercial: p, Comentarios: comentarios})
}

// PUT /propostas/{id}
// Só rascunhos podem ser editados; itens e parcelas são recalculados.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req PropostaRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if err := req.conferir(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dias := h.DiasValidade(r.Context())
	var p *PropostaComercial
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if p, err = h.Repository.Travar(tx, id); err != nil {
			return err
		}
		if !p.Editavel() {
			return ErrStatusInvalido
		}
		if p.ClienteID != req.ClienteID {
			if err := cliente.ConferirAtivo(tx, req.ClienteID); err != nil {
				return err
			}
		}
		req.aplicar(p, utils.Dia(h.Agora()), dias)
		p.Cliente = nil
		if err := p.CalcularTotais(); err != nil {
			return err
		}
		return h.Repository.Atualizar(tx, p)
	})
	if err != nil {
		h.responderErro(w, r, "erro ao atualizar proposta", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// DELETE /propostas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.Desativar(h.DB, id); err != nil {
		utils.ErroBanco(w, r, "proposta não encontrada", "erro ao excluir proposta", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// transicao trava a proposta ativa, aplica mudar e grava status e histórico na mesma transação.
// depois roda dentro da transação após a gravação.
func (h *Handler) transicao(w http.ResponseWriter, r *http.Request, mudar func(p *PropostaComercial, agora time.Time) error,
	depois func(tx *gorm.DB, p *PropostaComercial, agora time.Time) error) (*PropostaComercial, bool) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	agora := h.Agora()
	var p *PropostaComercial
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if p, err = h.Repository.Travar(tx, id); err != nil {
			return err
		}
		anterior := p.Status
		if err := mudar(p, agora); err != nil {
			return err
		}
		if err := h.Repository.SalvarStatus(tx, p); err != nil {
			return err
		}
		texto := fmt.Sprintf("Status alterado de %s para %s", anterior, p.Status)
		if err := comentario.RegistrarSistema(tx, comentario.RefProposta, p.ID, texto); err != nil {
			return err
		}
		if depois != nil {
			return depois(tx, p, agora)
		}
		return nil
	})
	if err != nil {
		h.responderErro(w, r, "erro ao alterar status da proposta", err)
		return nil, false
	}
	return p, true
}

// POST /propostas/{id}/enviar
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
	p, ok := h.transicao(w, r, func(p *PropostaComercial, agora time.Time) error {
		return p.Enviar(agora)
	}, nil)
	if ok {
		utils.ResponderJSON(w, http.StatusOK, p)
	}
}

// POST /propostas/{id}/recusar
func (h *Handler) Recusar(w http.ResponseWriter, r *http.Request) {
	p, ok := h.transicao(w, r, func(p *PropostaComercial, _ time.Time) error {
		return p.Recusar()
	}, nil)
	if ok {
		utils.ResponderJSON(w, http.StatusOK, p)
	}
}

// POST /propostas/{id}/aprovar
// Cada parcela vira uma receita pendente; o webhook é avisado após o commit.
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	p, ok := h.transicao(w, r, func(p *PropostaComercial, agora time.Time) error {
		return p.Aprovar(agora, utils.Dia(agora))
	}, lancarParcelas)
	if !ok {
		return
	}
	h.Notificador.PropostaAprovada(r.Context(), p.Numero, p.ClienteID, p.ValorTotal)
	utils.ResponderJSON(w, http.StatusOK, p)
}

func lancarParcelas(tx *gorm.DB, p *PropostaComercial, _ time.Time) error {
	repo := financeiro.NewRepository()
	for _, parc := range p.Parcelas {
		if !parc.Valor.IsPositive() {
			continue
		}
		descricao := fmt.Sprintf("Proposta %s - parcela %d/%d", p.Numero, parc.Numero, len(p.Parcelas))
		l := financeiro.NovaReceitaPendente("Proposta comercial", descricao, parc.Valor, parc.DataVencimento,
			financeiro.Origem{ClienteID: &p.ClienteID, PropostaID: &p.ID})
		if err := repo.Criar(tx, &l); err != nil {
			return err
		}
	}
	return nil
}

// NovaOrdemServico monta a OS correspondente: itens com produto viram peças, os demais serviços
func NovaOrdemServico(p *PropostaComercial) ordemservico.OrdemServico {
	o := ordemservico.OrdemServico{
		ClienteID:       p.ClienteID,
		Equipamento:     p.Titulo,
		DefeitoRelatado: p.Descricao,
		FormaPagamento:  p.ModoPagamento,
		Desconto:        p.Desconto,
		PropostaID:      &p.ID,
		Observacoes:     "Gerada a partir da proposta " + p.Numero,
	}
	for _, it := range p.Itens {
		tipo := ordemservico.ItemServico
		if it.ProdutoID != nil {
			tipo = ordemservico.ItemPeca
		}
		o.Itens = append(o.Itens, ordemservico.ItemOrdemServico{
			Tipo:          tipo,
			ProdutoID:     it.ProdutoID,
			Descricao:     it.Descricao,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
		})
	}
	return o
}

// POST /propostas/{id}/gerar-os
// Cria a OS com os itens da proposta e liga os dois documentos.
func (h *Handler) GerarOS(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	agora := h.Agora()
	var o ordemservico.OrdemServico
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		p, err := h.Repository.Travar(tx, id)
		if err != nil {
			return err
		}
		if err := p.PodeConverter(); err != nil {
			return err
		}
		o = NovaOrdemServico(p)
		if err := ordemservico.Abrir(tx, &o, agora); err != nil {
			return err
		}
		if err := p.Converter(o.ID); err != nil {
			return err
		}
		if err := h.Repository.SalvarStatus(tx, p); err != nil {
			return err
		}
		texto := fmt.Sprintf("Status alterado de %s para %s (ordem de serviço %s)", StatusAprovada, StatusConvertida, o.Numero)
		return comentario.RegistrarSistema(tx, comentario.RefProposta, p.ID, texto)
	})
	if err != nil {
		h.responderErro(w, r, "erro ao gerar ordem de serviço", err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, o)
}
