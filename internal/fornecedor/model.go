package fornecedor

import (
	"time"

	"github.com/KromaEnergia/api-erp/internal/models"
)

type Fornecedor struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	RazaoSocial     string `gorm:"size:200;not null" json:"razaoSocial"`
	NomeFantasia    string `gorm:"size:200" json:"nomeFantasia"`
	CNPJ            string `gorm:"size:14;index" json:"cnpj"`
	Contato         string `gorm:"size:120" json:"contato"`
	Email           string `gorm:"size:120" json:"email"`
	Telefone        string `gorm:"size:20" json:"telefone"`
	models.Endereco `gorm:"embedded"`
	Observacoes     string    `gorm:"type:text" json:"observacoes"`
	Ativo           bool      `gorm:"not null;index" json:"ativo"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FornecedorRequest é usado em POST /fornecedores e PUT /fornecedores/{id}
type FornecedorRequest struct {
	RazaoSocial  string `json:"razaoSocial" validate:"required"`
	NomeFantasia string `json:"nomeFantasia"`
	CNPJ         string `json:"cnpj" validate:"omitempty,cnpj"`
	Contato      string `json:"contato"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telefone     string `json:"telefone"`
	models.Endereco
	Observacoes string `json:"observacoes"`
}
