// Package configuracao guarda os dados da empresa usados em documentos e os
// padrões de cálculo (validade de proposta, tarifa, irradiação).
package configuracao

import (
	"time"

	"github.com/KromaEnergia/api-erp/internal/models"
)

// IDUnico é o id da única linha de configuração
const IDUnico = 1

const (
	ValidadePropostaPadrao = 15
	TarifaPadrao           = 0.95
	IrradiacaoPadrao       = 5.0
	TarifaFioBPadrao       = 0.25
)

type ConfiguracaoEmpresa struct {
	ID              uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	RazaoSocial     string `gorm:"size:200" json:"razaoSocial"`
	NomeFantasia    string `gorm:"size:200" json:"nomeFantasia"`
	CNPJ            string `gorm:"size:14" json:"cnpj"`
	models.Endereco `gorm:"embedded"`
	Telefone        string `gorm:"size:20" json:"telefone"`
	Email           string `gorm:"size:120" json:"email"`
	Site            string `gorm:"size:200" json:"site"`
	// LogoBase64 é um data URL (data:image/png;base64,...)
	LogoBase64           string    `gorm:"type:text" json:"logoBase64"`
	RodapeDocumentos     string    `gorm:"type:text" json:"rodapeDocumentos"`
	ValidadePropostaDias int       `gorm:"not null" json:"validadePropostaDias"`
	TarifaPadraoKWh      float64   `gorm:"not null" json:"tarifaPadraoKWh"`
	IrradiacaoPadrao     float64   `gorm:"not null" json:"irradiacaoPadrao"`
	TarifaFioB           float64   `gorm:"not null" json:"tarifaFioB"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (ConfiguracaoEmpresa) TableName() string { return "configuracao_empresa" }

// Padrao devolve a configuração inicial, gravada no primeiro acesso
func Padrao() ConfiguracaoEmpresa {
	return ConfiguracaoEmpresa{
		ID:                   IDUnico,
		RazaoSocial:          "Minha Empresa",
		ValidadePropostaDias: ValidadePropostaPadrao,
		TarifaPadraoKWh:      TarifaPadrao,
		IrradiacaoPadrao:     IrradiacaoPadrao,
		TarifaFioB:           TarifaFioBPadrao,
	}
}
