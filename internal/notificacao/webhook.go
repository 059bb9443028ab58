// Package notificacao envia alertas para um webhook externo (duplicidade de
// documento, proposta aprovada). Falhas são registradas e nunca interrompem a
// requisição que gerou o alerta.
package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	TipoDocumentoDuplicado = "documento_duplicado"
	TipoPropostaAprovada   = "proposta_aprovada"
)

// Alerta é o corpo enviado ao webhook
type Alerta struct {
	Tipo      string         `json:"tipo"`
	Mensagem  string         `json:"mensagem"`
	Dados     map[string]any `json:"dados,omitempty"`
	EnviadoEm time.Time      `json:"enviadoEm"`
}

type Notificador interface {
	DocumentoDuplicado(ctx context.Context, entidade, documento string)
	PropostaAprovada(ctx context.Context, numero string, clienteID uint, valor decimal.Decimal)
}

type Webhook struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

func NewWebhook(cfg config.WebhookConfig, log *zap.Logger) *Webhook {
	return &Webhook{
		URL:    cfg.URL,
		Client: &http.Client{Timeout: 5 * time.Second},
		Log:    log,
	}
}

func (w *Webhook) DocumentoDuplicado(ctx context.Context, entidade, documento string) {
	w.EnviarWebhookAlerta(ctx, Alerta{
		Tipo:     TipoDocumentoDuplicado,
		Mensagem: fmt.Sprintf("Alerta: cadastro de %s com documento já existente", entidade),
		Dados:    map[string]any{"entidade": entidade, "documento": documento},
	})
}

func (w *Webhook) PropostaAprovada(ctx context.Context, numero string, clienteID uint, valor decimal.Decimal) {
	w.EnviarWebhookAlerta(ctx, Alerta{
		Tipo:     TipoPropostaAprovada,
		Mensagem: fmt.Sprintf("Proposta %s aprovada", numero),
		Dados:    map[string]any{"numero": numero, "clienteId": clienteID, "valor": valor.StringFixed(2)},
	})
}

// EnviarWebhookAlerta posta o alerta como JSON. Sem URL configurada não faz nada.
func (w *Webhook) EnviarWebhookAlerta(ctx context.Context, a Alerta) {
	if w.URL == "" {
		return
	}
	if a.EnviadoEm.IsZero() {
		a.EnviadoEm = time.Now()
	}
	body, err := json.Marshal(a)
	if err != nil {
		w.Log.Error("erro ao serializar alerta", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		w.Log.Error("erro ao montar webhook", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		w.Log.Warn("erro ao enviar webhook", zap.String("tipo", a.Tipo), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		w.Log.Warn("webhook recusou alerta", zap.String("tipo", a.Tipo), zap.Int("status", resp.StatusCode))
	}
}

// Nop descarta os alertas
type Nop struct{}

func (Nop) DocumentoDuplicado(context.Context, string, string)              {}
func (Nop) PropostaAprovada(context.Context, string, uint, decimal.Decimal) {}
