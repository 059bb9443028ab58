package cliente

import (
	"errors"

	"github.com/KromaEnergia/api-erp/internal/models"
	"gorm.io/gorm"
)

// ErrClienteInvalido indica cliente inexistente ou desativado
var ErrClienteInvalido = errors.New("cliente não encontrado ou inativo")

// ConferirAtivo devolve ErrClienteInvalido quando o cliente não pode receber documentos
func ConferirAtivo(db *gorm.DB, id uint) error {
	var total int64
	if err := db.Model(&Cliente{}).Where("id = ? AND ativo = ?", id, true).Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		return ErrClienteInvalido
	}
	return nil
}

type Filtro struct {
	Busca           string
	IncluirInativos bool
}

type Repository interface {
	Listar(db *gorm.DB, f Filtro) ([]Cliente, error)
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	BuscarPorDocumento(db *gorm.DB, documento string) (*Cliente, error)
	Criar(db *gorm.DB, c *Cliente) error
	Atualizar(db *gorm.DB, c *Cliente) error
	Desativar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]Cliente, error) {
	var list []Cliente
	err := db.Scopes(
		models.Ativos(f.IncluirInativos),
		models.Busca(f.Busca, "nome", "documento", "email", "cidade"),
	).Order("nome").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// BuscarPorDocumento considera apenas clientes ativos
func (r *repositoryImpl) BuscarPorDocumento(db *gorm.DB, documento string) (*Cliente, error) {
	var c Cliente
	if err := db.Where("documento = ? AND ativo = ?", documento, true).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Cliente) error {
	c.Ativo = true
	return db.Create(c).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Desativar(db *gorm.DB, id uint) error {
	return models.Desativar(db, &Cliente{}, id)
}
