package comentario

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Comentario) error
	ListarPorReferencia(db *gorm.DB, referencia string, id uint) ([]Comentario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Comentario, error)
	Atualizar(db *gorm.DB, id uint, novoTexto string) error
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Comentario) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarPorReferencia(db *gorm.DB, referencia string, id uint) ([]Comentario, error) {
	var comentarios []Comentario
	err := db.Where("referencia = ? AND referencia_id = ?", referencia, id).
		Order("created_at, id").
		Find(&comentarios).Error
	return comentarios, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Comentario, error) {
	var c Comentario
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novoTexto string) error {
	return db.Model(&Comentario{}).Where("id = ?", id).Update("texto", novoTexto).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	return db.Delete(&Comentario{}, id).Error
}

// RegistrarSistema grava um comentário de histórico. Deve receber a mesma
// transação da alteração que o motivou.
func RegistrarSistema(tx *gorm.DB, referencia string, id uint, texto string) error {
	return tx.Create(&Comentario{
		Texto:        texto,
		Referencia:   referencia,
		ReferenciaID: id,
		Sistema:      true,
	}).Error
}
