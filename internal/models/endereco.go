// Package models reúne tipos e escopos gorm compartilhados pelos cadastros.
package models

import (
	"strings"

	"github.com/KromaEnergia/api-erp/internal/utils"
)

// Endereco é embutido nas tabelas de cliente, fornecedor e configuração
type Endereco struct {
	CEP         string `gorm:"size:8" json:"cep"`
	Logradouro  string `gorm:"size:200" json:"logradouro"`
	Numero      string `gorm:"size:20" json:"numero"`
	Complemento string `gorm:"size:100" json:"complemento"`
	Bairro      string `gorm:"size:100" json:"bairro"`
	Cidade      string `gorm:"size:100" json:"cidade"`
	UF          string `gorm:"size:2" json:"uf"`
}

// Normalizar guarda CEP só com dígitos e UF em maiúsculas
func (e *Endereco) Normalizar() {
	e.CEP = utils.SomenteDigitos(e.CEP)
	e.UF = strings.ToUpper(strings.TrimSpace(e.UF))
}

// Linha devolve o endereço em uma linha para documentos impressos
func (e Endereco) Linha() string {
	partes := []string{}
	if e.Logradouro != "" {
		l := e.Logradouro
		if e.Numero != "" {
			l += ", " + e.Numero
		}
		if e.Complemento != "" {
			l += " - " + e.Complemento
		}
		partes = append(partes, l)
	}
	if e.Bairro != "" {
		partes = append(partes, e.Bairro)
	}
	if e.Cidade != "" {
		c := e.Cidade
		if e.UF != "" {
			c += "/" + e.UF
		}
		partes = append(partes, c)
	}
	if len(e.CEP) == 8 {
		partes = append(partes, "CEP "+e.CEP[:5]+"-"+e.CEP[5:])
	}
	return strings.Join(partes, " - ")
}
