package financeiro

import (
	"time"

	"github.com/KromaEnergia/api-erp/internal/models"
	"gorm.io/gorm"
)

type Filtro struct {
	Tipo            string
	Status          string
	De              *time.Time
	Ate             *time.Time
	ClienteID       *uint
	IncluirInativos bool
}

type Repository interface {
	Criar(db *gorm.DB, l *LancamentoFinanceiro) error
	Listar(db *gorm.DB, f Filtro) ([]LancamentoFinanceiro, error)
	BuscarPorID(db *gorm.DB, id uint) (*LancamentoFinanceiro, error)
	Salvar(db *gorm.DB, l *LancamentoFinanceiro) error
	Desativar(db *gorm.DB, id uint) error
	ParaResumo(db *gorm.DB) ([]LancamentoFinanceiro, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, l *LancamentoFinanceiro) error {
	l.Ativo = true
	if l.Status == "" {
		l.Status = StatusPendente
	}
	return db.Create(l).Error
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]LancamentoFinanceiro, error) {
	q := db.Scopes(models.Ativos(f.IncluirInativos))
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.De != nil {
		q = q.Where("data_vencimento >= ?", *f.De)
	}
	if f.Ate != nil {
		q = q.Where("data_vencimento < ?", f.Ate.AddDate(0, 0, 1))
	}
	if f.ClienteID != nil {
		q = q.Where("cliente_id = ?", *f.ClienteID)
	}
	var list []LancamentoFinanceiro
	err := q.Order("data_vencimento, id").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*LancamentoFinanceiro, error) {
	var l LancamentoFinanceiro
	if err := db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, l *LancamentoFinanceiro) error {
	return db.Save(l).Error
}

func (r *repositoryImpl) Desativar(db *gorm.DB, id uint) error {
	return models.Desativar(db, &LancamentoFinanceiro{}, id)
}

// ParaResumo traz os lançamentos ativos não cancelados; o recorte por período é
// feito em MontarResumo porque previsto e realizado usam datas diferentes.
func (r *repositoryImpl) ParaResumo(db *gorm.DB) ([]LancamentoFinanceiro, error) {
	var list []LancamentoFinanceiro
	err := db.Where("ativo = ? AND status <> ?", true, StatusCancelado).Find(&list).Error
	return list, err
}
