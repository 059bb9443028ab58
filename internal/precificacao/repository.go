package precificacao

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

func (r *Repository) Create(s *SimulacaoPrecificacao) error {
	s.Ativo = true
	return r.DB.Create(s).Error
}

func (r *Repository) ListAll(busca string, inativos bool) ([]SimulacaoPrecificacao, error) {
	var list []SimulacaoPrecificacao
	err := r.DB.Scopes(models.Ativos(inativos), models.Busca(busca, "nome")).Order("id DESC").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*SimulacaoPrecificacao, error) {
	var s SimulacaoPrecificacao
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Update(s *SimulacaoPrecificacao) error {
	return r.DB.Save(s).Error
}

func (r *Repository) Delete(id uint) error {
	return models.Desativar(r.DB, &SimulacaoPrecificacao{}, id)
}
