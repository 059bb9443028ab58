package configuracao

import (
	"errors"
	"io"
	"net/http"

	"github.com/KromaEnergia/api-erp/internal/utils"
)

// TamanhoMaximoLogo limita o upload do logo
const TamanhoMaximoLogo = 2 << 20

type Handler struct {
	Servico *Servico
}

func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

// GET /configuracao
func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	c, err := h.Servico.Obter(r.Context())
	if err != nil {
		utils.ErroInterno(w, r, "erro ao carregar configuração", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// PUT /configuracao
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var req ConfiguracaoRequest
	if !utils.DecodificarJSON(w, r, &req) {
		return
	}
	if req.CNPJ != "" && !utils.CNPJValido(req.CNPJ) {
		http.Error(w, "CNPJ inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Servico.Obter(r.Context())
	if err != nil {
		utils.ErroInterno(w, r, "erro ao carregar configuração", err)
		return
	}
	req.aplicar(c)
	if err := h.Servico.Salvar(r.Context(), c); err != nil {
		utils.ErroInterno(w, r, "erro ao salvar configuração", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// PUT /configuracao/logo
// multipart com o campo "logo"
func (h *Handler) AtualizarLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, TamanhoMaximoLogo+1<<10)
	if err := r.ParseMultipartForm(TamanhoMaximoLogo); err != nil {
		http.Error(w, "formulário inválido ou arquivo muito grande", http.StatusBadRequest)
		return
	}
	arquivo, _, err := r.FormFile("logo")
	if err != nil {
		http.Error(w, "campo 'logo' é obrigatório", http.StatusBadRequest)
		return
	}
	defer arquivo.Close()

	data, err := io.ReadAll(io.LimitReader(arquivo, TamanhoMaximoLogo+1))
	if err != nil {
		http.Error(w, "erro ao ler arquivo", http.StatusBadRequest)
		return
	}
	if len(data) > TamanhoMaximoLogo {
		http.Error(w, "arquivo muito grande", http.StatusBadRequest)
		return
	}
	dataURL, err := DataURL(data)
	if err != nil {
		if errors.Is(err, ErrImagemInvalida) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.ErroInterno(w, r, "erro ao converter logo", err)
		return
	}
	c, err := h.Servico.SalvarLogo(r.Context(), dataURL)
	if err != nil {
		utils.ErroInterno(w, r, "erro ao salvar logo", err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}
