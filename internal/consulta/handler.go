package consulta

import (
	"context"
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/logger"
	"github.com/KromaEnergia/api-erp/internal/models"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Consultor interface {
	BuscarCEP(ctx context.Context, cep string) (*models.Endereco, error)
	BuscarCNPJ(ctx context.Context, cnpj string) (*Empresa, error)
}

type Handler struct {
	Consultor Consultor
}

func NewHandler(c Consultor) *Handler {
	return &Handler{Consultor: c}
}

func responderErro(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrCEPInvalido), errors.Is(err, ErrCNPJInvalido):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNaoEncontrado):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.FromContext(r.Context()).Warn("falha na consulta externa", zap.Error(err))
		http.Error(w, ErrServicoExterno.Error(), http.StatusBadGateway)
	}
}

// GET /consultas/cep/{cep}
func (h *Handler) CEP(w http.ResponseWriter, r *http.Request) {
	e, err := h.Consultor.BuscarCEP(r.Context(), mux.Vars(r)["cep"])
	if err != nil {
		responderErro(w, r, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, e)
}

// GET /consultas/cnpj/{cnpj}
func (h *Handler) CNPJ(w http.ResponseWriter, r *http.Request) {
	e, err := h.Consultor.BuscarCNPJ(r.Context(), mux.Vars(r)["cnpj"])
	if err != nil {
		responderErro(w, r, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, e)
}
