package ordemservico

import (
	"time"

	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/models"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filtro struct {
	Status          string
	ClienteID       *uint
	Busca           string
	IncluirInativos bool
}

type Repository interface {
	Criar(tx *gorm.DB, o *OrdemServico, agora time.Time) error
	Listar(db *gorm.DB, f Filtro) ([]OrdemServico, error)
	BuscarPorID(db *gorm.DB, id uint) (*OrdemServico, error)
	Travar(tx *gorm.DB, id uint) (*OrdemServico, error)
	Atualizar(tx *gorm.DB, o *OrdemServico) error
	Desativar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Abrir numera e grava uma nova OS com itens e o registro de abertura no histórico.
// Usado também na conversão de propostas; tx deve ser uma transação.
func Abrir(tx *gorm.DB, o *OrdemServico, agora time.Time) error {
	o.Status = StatusAberta
	o.Ativo = true
	if o.DataAbertura.IsZero() {
		o.DataAbertura = utils.Dia(agora)
	}
	o.CalcularTotais()

	err := utils.Numerar(tx, o.TableName(), "OS", agora, func(sp *gorm.DB, numero string) error {
		o.Numero = numero
		return sp.Omit("Cliente").Create(o).Error
	})
	if err != nil {
		return err
	}
	return comentario.RegistrarSistema(tx, comentario.RefOrdemServico, o.ID, "Ordem de serviço "+o.Numero+" aberta")
}

func (r *repositoryImpl) Criar(tx *gorm.DB, o *OrdemServico, agora time.Time) error {
	return Abrir(tx, o, agora)
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]OrdemServico, error) {
	q := db.Scopes(models.Ativos(f.IncluirInativos), models.Busca(f.Busca, "numero", "equipamento", "tecnico"))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClienteID != nil {
		q = q.Where("cliente_id = ?", *f.ClienteID)
	}
	var list []OrdemServico
	err := q.Preload("Cliente").Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*OrdemServico, error) {
	var o OrdemServico
	err := db.
		Preload("Cliente").
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Atualizar grava os campos da OS e substitui todos os itens
// Travar bloqueia a linha ativa até o commit e relê o estado já gravado
func (r *repositoryImpl) Travar(tx *gorm.DB, id uint) (*OrdemServico, error) {
	if err := models.Travar(tx, &OrdemServico{}, id); err != nil {
		return nil, err
	}
	return r.BuscarPorID(tx, id)
}

func (r *repositoryImpl) Atualizar(tx *gorm.DB, o *OrdemServico) error {
	if err := tx.Where("ordem_servico_id = ?", o.ID).Delete(&ItemOrdemServico{}).Error; err != nil {
		return err
	}
	for i := range o.Itens {
		o.Itens[i].ID = 0
		o.Itens[i].OrdemServicoID = o.ID
	}
	if len(o.Itens) > 0 {
		if err := tx.Create(&o.Itens).Error; err != nil {
			return err
		}
	}
	return tx.Omit(clause.Associations).Save(o).Error
}

func (r *repositoryImpl) Desativar(db *gorm.DB, id uint) error {
	return models.Desativar(db, &OrdemServico{}, id)
}
