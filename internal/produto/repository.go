package produto

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

func (r *Repository) ListAll(busca string, incluirInativos bool) ([]Produto, error) {
	var produtos []Produto
	err := r.DB.Scopes(
		models.Ativos(incluirInativos),
		models.Busca(busca, "codigo", "descricao"),
	).Order("descricao").Find(&produtos).Error
	return produtos, err
}

func (r *Repository) FindByID(id uint) (*Produto, error) {
	var p Produto
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByCodigo inclui inativos: o código é único na tabela inteira
func (r *Repository) FindByCodigo(codigo string) (*Produto, error) {
	var p Produto
	if err := r.DB.Where("codigo = ?", codigo).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(p *Produto) error {
	p.Ativo = true
	return r.DB.Create(p).Error
}

func (r *Repository) Update(p *Produto) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Deactivate(id uint) error {
	return models.Desativar(r.DB, &Produto{}, id)
}
