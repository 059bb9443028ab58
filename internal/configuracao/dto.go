package configuracao

import (
	"strings"

	"github.com/KromaEnergia/api-erp/internal/models"
	"github.com/KromaEnergia/api-erp/internal/utils"
)

// ConfiguracaoRequest é o corpo de PUT /configuracao. O logo tem rota própria.
type ConfiguracaoRequest struct {
	RazaoSocial  string `json:"razaoSocial" validate:"required,max=200"`
	NomeFantasia string `json:"nomeFantasia" validate:"max=200"`
	CNPJ         string `json:"cnpj"`
	models.Endereco
	Telefone             string  `json:"telefone" validate:"max=20"`
	Email                string  `json:"email" validate:"omitempty,email"`
	Site                 string  `json:"site" validate:"max=200"`
	RodapeDocumentos     string  `json:"rodapeDocumentos"`
	ValidadePropostaDias int     `json:"validadePropostaDias" validate:"gte=1,lte=365"`
	TarifaPadraoKWh      float64 `json:"tarifaPadraoKWh" validate:"gt=0"`
	IrradiacaoPadrao     float64 `json:"irradiacaoPadrao" validate:"gt=0"`
	TarifaFioB           float64 `json:"tarifaFioB" validate:"gte=0"`
}

func (req *ConfiguracaoRequest) aplicar(c *ConfiguracaoEmpresa) {
	c.RazaoSocial = strings.TrimSpace(req.RazaoSocial)
	c.NomeFantasia = strings.TrimSpace(req.NomeFantasia)
	c.CNPJ = utils.SomenteDigitos(req.CNPJ)
	c.Endereco = req.Endereco
	c.Endereco.Normalizar()
	c.Telefone = req.Telefone
	c.Email = strings.TrimSpace(req.Email)
	c.Site = strings.TrimSpace(req.Site)
	c.RodapeDocumentos = req.RodapeDocumentos
	c.ValidadePropostaDias = req.ValidadePropostaDias
	c.TarifaPadraoKWh = req.TarifaPadraoKWh
	c.IrradiacaoPadrao = req.IrradiacaoPadrao
	c.TarifaFioB = req.TarifaFioB
}
