package cliente

import (
	"errors"

	"github.com/KromaEnergia/api-erp/internal/models"
	"github.com/KromaEnergia/api-erp/internal/utils"
)

// ClienteRequest é usado em POST /clientes e PUT /clientes/{id}
type ClienteRequest struct {
	Nome       string `json:"nome" validate:"required"`
	TipoPessoa string `json:"tipoPessoa" validate:"required,oneof=PF PJ"`
	Documento  string `json:"documento" validate:"omitempty,cpfcnpj"`
	Email      string `json:"email" validate:"omitempty,email"`
	Telefone   string `json:"telefone"`
	models.Endereco
	Observacoes string `json:"observacoes"`
}

// conferirDocumento exige CPF para PF e CNPJ para PJ
func (req *ClienteRequest) conferirDocumento() error {
	if req.Documento == "" {
		return nil
	}
	if req.TipoPessoa == PessoaFisica && !utils.CPFValido(req.Documento) {
		return errors.New("pessoa física exige CPF válido")
	}
	if req.TipoPessoa == PessoaJuridica && !utils.CNPJValido(req.Documento) {
		return errors.New("pessoa jurídica exige CNPJ válido")
	}
	return nil
}

func (req *ClienteRequest) aplicar(c *Cliente) {
	c.Nome = req.Nome
	c.TipoPessoa = req.TipoPessoa
	c.Documento = utils.SomenteDigitos(req.Documento)
	c.Email = req.Email
	c.Telefone = req.Telefone
	c.Endereco = req.Endereco
	c.Endereco.Normalizar()
	c.Observacoes = req.Observacoes
}
