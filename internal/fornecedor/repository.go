package fornecedor

import (
	"github.com/KromaEnergia/api-erp/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListAll(busca string, incluirInativos bool) ([]Fornecedor, error) {
	var list []Fornecedor
	err := r.DB.Scopes(
		models.Ativos(incluirInativos),
		models.Busca(busca, "razao_social", "nome_fantasia", "cnpj"),
	).Order("razao_social").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Fornecedor, error) {
	var f Fornecedor
	if err := r.DB.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// FindByCNPJ considera apenas fornecedores ativos
func (r *Repository) FindByCNPJ(cnpj string) (*Fornecedor, error) {
	var f Fornecedor
	if err := r.DB.Where("cnpj = ? AND ativo = ?", cnpj, true).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) Create(f *Fornecedor) error {
	f.Ativo = true
	return r.DB.Create(f).Error
}

func (r *Repository) Update(f *Fornecedor) error {
	return r.DB.Save(f).Error
}

func (r *Repository) Deactivate(id uint) error {
	return models.Desativar(r.DB, &Fornecedor{}, id)
}
