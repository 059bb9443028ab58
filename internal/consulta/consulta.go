// Package consulta busca endereço por CEP (ViaCEP) e dados de empresa por CNPJ
// (BrasilAPI) e devolve os dois já normalizados para os cadastros.
package consulta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/KromaEnergia/api-erp/internal/models"
	"github.com/KromaEnergia/api-erp/internal/utils"
)

var (
	ErrCEPInvalido   = errors.New("CEP deve ter 8 dígitos")
	ErrCNPJInvalido  = errors.New("CNPJ inválido")
	ErrNaoEncontrado = errors.New("registro não encontrado")
	// ErrServicoExterno cobre falha de rede, status inesperado e resposta ilegível
	ErrServicoExterno = errors.New("serviço de consulta indisponível")
)

// Empresa é o retorno normalizado da consulta de CNPJ
type Empresa struct {
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razaoSocial"`
	NomeFantasia string `json:"nomeFantasia"`
	Situacao     string `json:"situacao"`
	models.Endereco
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

type Cliente struct {
	CEPBaseURL  string
	CNPJBaseURL string
	HTTP        *http.Client
}

func NewCliente(cfg config.ConsultaConfig) *Cliente {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Cliente{
		CEPBaseURL:  strings.TrimRight(cfg.CEPBaseURL, "/"),
		CNPJBaseURL: strings.TrimRight(cfg.CNPJBaseURL, "/"),
		HTTP:        &http.Client{Timeout: timeout},
	}
}

// viaCEP. O campo erro vem como bool ou como string "true" conforme a versão.
type viaCEP struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        any    `json:"erro"`
}

func (v viaCEP) naoEncontrado() bool {
	switch e := v.Erro.(type) {
	case bool:
		return e
	case string:
		return e == "true"
	}
	return false
}

type brasilAPI struct {
	CNPJ                       string  `json:"cnpj"`
	RazaoSocial                string  `json:"razao_social"`
	NomeFantasia               string  `json:"nome_fantasia"`
	DescricaoSituacaoCadastral string  `json:"descricao_situacao_cadastral"`
	CEP                        string  `json:"cep"`
	DescricaoTipoLogradouro    string  `json:"descricao_tipo_de_logradouro"`
	Logradouro                 string  `json:"logradouro"`
	Numero                     string  `json:"numero"`
	Complemento                string  `json:"complemento"`
	Bairro                     string  `json:"bairro"`
	Municipio                  string  `json:"municipio"`
	UF                         string  `json:"uf"`
	DDDTelefone1               string  `json:"ddd_telefone_1"`
	Email                      *string `json:"email"`
}

// BuscarCEP consulta o ViaCEP
func (c *Cliente) BuscarCEP(ctx context.Context, cep string) (*models.Endereco, error) {
	cep = utils.SomenteDigitos(cep)
	if len(cep) != 8 {
		return nil, ErrCEPInvalido
	}
	var v viaCEP
	if err := c.get(ctx, fmt.Sprintf("%s/%s/json/", c.CEPBaseURL, cep), &v); err != nil {
		return nil, err
	}
	if v.naoEncontrado() {
		return nil, ErrNaoEncontrado
	}
	e := &models.Endereco{
		CEP:         v.CEP,
		Logradouro:  v.Logradouro,
		Complemento: v.Complemento,
		Bairro:      v.Bairro,
		Cidade:      v.Localidade,
		UF:          v.UF,
	}
	e.Normalizar()
	return e, nil
}

// BuscarCNPJ consulta a BrasilAPI
func (c *Cliente) BuscarCNPJ(ctx context.Context, cnpj string) (*Empresa, error) {
	cnpj = utils.SomenteDigitos(cnpj)
	if !utils.CNPJValido(cnpj) {
		return nil, ErrCNPJInvalido
	}
	var b brasilAPI
	if err := c.get(ctx, c.CNPJBaseURL+"/"+cnpj, &b); err != nil {
		return nil, err
	}

	logradouro := strings.TrimSpace(b.Logradouro)
	if b.DescricaoTipoLogradouro != "" && !strings.HasPrefix(strings.ToUpper(logradouro), strings.ToUpper(b.DescricaoTipoLogradouro)) {
		logradouro = b.DescricaoTipoLogradouro + " " + logradouro
	}
	emp := &Empresa{
		CNPJ:         utils.SomenteDigitos(b.CNPJ),
		RazaoSocial:  b.RazaoSocial,
		NomeFantasia: b.NomeFantasia,
		Situacao:     b.DescricaoSituacaoCadastral,
		Endereco: models.Endereco{
			CEP:         b.CEP,
			Logradouro:  logradouro,
			Numero:      b.Numero,
			Complemento: b.Complemento,
			Bairro:      b.Bairro,
			Cidade:      b.Municipio,
			UF:          b.UF,
		},
		Telefone: utils.SomenteDigitos(b.DDDTelefone1),
	}
	if b.Email != nil {
		emp.Email = strings.ToLower(*b.Email)
	}
	if emp.CNPJ == "" {
		emp.CNPJ = cnpj
	}
	emp.Endereco.Normalizar()
	return emp, nil
}

func (c *Cliente) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServicoExterno, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNaoEncontrado
	case resp.StatusCode == http.StatusBadRequest:
		// ViaCEP responde 400 para formato inválido
		return ErrNaoEncontrado
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", ErrServicoExterno, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrServicoExterno, err)
	}
	return nil
}
