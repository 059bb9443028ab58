package proposta

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
	Criar(tx *gorm.DB, p *PropostaComercial, agora time.Time) error
	Listar(db *gorm.DB, f Filtro) ([]PropostaComercial, error)
	BuscarPorID(db *gorm.DB, id uint) (*PropostaComercial, error)
	Travar(tx *gorm.DB, id uint) (*PropostaComercial, error)
	Atualizar(tx *gorm.DB, p *PropostaComercial) error
	SalvarStatus(tx *gorm.DB, p *PropostaComercial) error
	Desativar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Abrir numera e grava uma proposta em rascunho com itens e parcelas.
// Também usado pelos projetos solares; tx deve ser uma transação.
func Abrir(tx *gorm.DB, p *PropostaComercial, agora time.Time) error {
	p.Status = StatusRascunho
	p.Ativo = true
	if err := p.CalcularTotais(); err != nil {
		return err
	}
	err := utils.Numerar(tx, p.TableName(), "PC", agora, func(sp *gorm.DB, numero string) error {
		p.Numero = numero
		return sp.Omit("Cliente").Create(p).Error
	})
	if err != nil {
		return err
	}
	return comentario.RegistrarSistema(tx, comentario.RefProposta, p.ID, "Proposta "+p.Numero+" criada")
}

func (r *repositoryImpl) Criar(tx *gorm.DB, p *PropostaComercial, agora time.Time) error {
	return Abrir(tx, p, agora)
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]PropostaComercial, error) {
	q := db.Scopes(models.Ativos(f.IncluirInativos), models.Busca(f.Busca, "numero", "titulo"))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClienteID != nil {
		q = q.Where("cliente_id = ?", *f.ClienteID)
	}
	var list []PropostaComercial
	err := q.Preload("Cliente").Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*PropostaComercial, error) {
	var p PropostaComercial
	err := db.
		Preload("Cliente").
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Parcelas", func(db *gorm.DB) *gorm.DB { return db.Order("numero") }).
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Atualizar grava a proposta e substitui itens e parcelas
// Travar bloqueia a linha ativa até o commit e relê o estado já gravado
func (r *repositoryImpl) Travar(tx *gorm.DB, id uint) (*PropostaComercial, error) {
	if err := models.Travar(tx, &PropostaComercial{}, id); err != nil {
		return nil, err
	}
	return r.BuscarPorID(tx, id)
}

func (r *repositoryImpl) Atualizar(tx *gorm.DB, p *PropostaComercial) error {
	if err := tx.Where("proposta_id = ?", p.ID).Delete(&ItemProposta{}).Error; err != nil {
		return err
	}
	if err := tx.Where("proposta_id = ?", p.ID).Delete(&ParcelaProposta{}).Error; err != nil {
		return err
	}
	for i := range p.Itens {
		p.Itens[i].ID = 0
		p.Itens[i].PropostaID = p.ID
	}
	for i := range p.Parcelas {
		p.Parcelas[i].ID = 0
		p.Parcelas[i].PropostaID = p.ID
	}
	if len(p.Itens) > 0 {
		if err := tx.Create(&p.Itens).Error; err != nil {
			return err
		}
	}
	if len(p.Parcelas) > 0 {
		if err := tx.Create(&p.Parcelas).Error; err != nil {
			return err
		}
	}
	return tx.Omit(clause.Associations).Save(p).Error
}

// SalvarStatus grava só os campos do fluxo de aprovação
func (r *repositoryImpl) SalvarStatus(tx *gorm.DB, p *PropostaComercial) error {
	return tx.Model(&PropostaComercial{}).Where("id = ?", p.ID).Updates(map[string]any{
		"status":           p.Status,
		"data_envio":       p.DataEnvio,
		"data_aprovacao":   p.DataAprovacao,
		"ordem_servico_id": p.OrdemServicoID,
	}).Error
}

func (r *repositoryImpl) Desativar(db *gorm.DB, id uint) error {
	return models.Desativar(db, &PropostaComercial{}, id)
}
