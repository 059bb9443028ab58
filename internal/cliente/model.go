package cliente

import (
	"time"

	"github.com/KromaEnergia/api-erp/internal/models"
)

const (
	PessoaFisica   = "PF"
	PessoaJuridica = "PJ"
)

type Cliente struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Nome            string `gorm:"size:200;not null" json:"nome"`
	TipoPessoa      string `gorm:"size:2;not null" json:"tipoPessoa"`
	Documento       string `gorm:"size:14;index" json:"documento"`
	Email           string `gorm:"size:120" json:"email"`
	Telefone        string `gorm:"size:20" json:"telefone"`
	models.Endereco `gorm:"embedded"`
	Observacoes     string    `gorm:"type:text" json:"observacoes"`
	Ativo           bool      `gorm:"not null;index" json:"ativo"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
