package solar

import (
	"github.com/KromaEnergia/api-erp/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogoRepository cuida de painéis e inversores
type CatalogoRepository struct {
	DB *gorm.DB
}

func NewCatalogoRepository(db *gorm.DB) *CatalogoRepository {
	return &CatalogoRepository{DB: db}
}

func (r *CatalogoRepository) ListarPaineis(busca string, inativos bool) ([]PainelSolar, error) {
	var list []PainelSolar
	err := r.DB.Scopes(models.Ativos(inativos), models.Busca(busca, "fabricante", "modelo")).
		Order("fabricante, potencia_w").Find(&list).Error
	return list, err
}

func (r *CatalogoRepository) BuscarPainel(id uint) (*PainelSolar, error) {
	var p PainelSolar
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogoRepository) SalvarPainel(p *PainelSolar) error {
	return r.DB.Save(p).Error
}

func (r *CatalogoRepository) DesativarPainel(id uint) error {
	return models.Desativar(r.DB, &PainelSolar{}, id)
}

func (r *CatalogoRepository) ListarInversores(busca string, inativos bool) ([]Inversor, error) {
	var list []Inversor
	err := r.DB.Scopes(models.Ativos(inativos), models.Busca(busca, "fabricante", "modelo")).
		Order("fabricante, potencia_kw").Find(&list).Error
	return list, err
}

func (r *CatalogoRepository) BuscarInversor(id uint) (*Inversor, error) {
	var i Inversor
	if err := r.DB.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *CatalogoRepository) SalvarInversor(i *Inversor) error {
	return r.DB.Save(i).Error
}

func (r *CatalogoRepository) DesativarInversor(id uint) error {
	return models.Desativar(r.DB, &Inversor{}, id)
}

type FiltroProjeto struct {
	ClienteID       *uint
	Busca           string
	IncluirInativos bool
}

type ProjetoRepository interface {
	Criar(db *gorm.DB, p *ProjetoSolar) error
	Listar(db *gorm.DB, f FiltroProjeto) ([]ProjetoSolar, error)
	BuscarPorID(db *gorm.DB, id uint) (*ProjetoSolar, error)
	Atualizar(db *gorm.DB, p *ProjetoSolar) error
	Desativar(db *gorm.DB, id uint) error
}

type projetoRepositoryImpl struct{}

func NewProjetoRepository() ProjetoRepository {
	return &projetoRepositoryImpl{}
}

func (r *projetoRepositoryImpl) Criar(db *gorm.DB, p *ProjetoSolar) error {
	p.Ativo = true
	return db.Omit(clause.Associations).Create(p).Error
}

func (r *projetoRepositoryImpl) Listar(db *gorm.DB, f FiltroProjeto) ([]ProjetoSolar, error) {
	q := db.Scopes(models.Ativos(f.IncluirInativos), models.Busca(f.Busca, "nome"))
	if f.ClienteID != nil {
		q = q.Where("cliente_id = ?", *f.ClienteID)
	}
	var list []ProjetoSolar
	err := q.Preload("Cliente").Order("id DESC").Find(&list).Error
	return list, err
}

func (r *projetoRepositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*ProjetoSolar, error) {
	var p ProjetoSolar
	if err := db.Preload("Cliente").Preload("Painel").Preload("Inversor").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projetoRepositoryImpl) Atualizar(db *gorm.DB, p *ProjetoSolar) error {
	return db.Omit(clause.Associations).Save(p).Error
}

func (r *projetoRepositoryImpl) Desativar(db *gorm.DB, id uint) error {
	return models.Desativar(db, &ProjetoSolar{}, id)
}
