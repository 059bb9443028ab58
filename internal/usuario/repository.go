package usuario

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*Usuario, error)
	FindByID(db *gorm.DB, id uint) (*Usuario, error)
	List(db *gorm.DB, incluirInativos bool) ([]Usuario, error)
	Save(db *gorm.DB, u *Usuario) error
	Update(db *gorm.DB, id uint, req *UpdateUsuarioRequest) (*Usuario, error)
	Deactivate(db *gorm.DB, id uint) error
	SetSenha(db *gorm.DB, id uint, hash string, precisaRedefinir bool) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func normalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", normalizarEmail(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) List(db *gorm.DB, incluirInativos bool) ([]Usuario, error) {
	var list []Usuario
	q := db.Order("nome")
	if !incluirInativos {
		q = q.Where("ativo = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Save(db *gorm.DB, u *Usuario) error {
	u.Email = normalizarEmail(u.Email)
	return db.Create(u).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, req *UpdateUsuarioRequest) (*Usuario, error) {
	u, err := r.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		u.Nome = *req.Nome
	}
	if req.Email != nil {
		u.Email = normalizarEmail(*req.Email)
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	if req.Ativo != nil {
		u.Ativo = *req.Ativo
	}
	return u, db.Save(u).Error
}

func (r *repositoryImpl) Deactivate(db *gorm.DB, id uint) error {
	res := db.Model(&Usuario{}).Where("id = ?", id).Update("ativo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) SetSenha(db *gorm.DB, id uint, hash string, precisaRedefinir bool) error {
	return db.Model(&Usuario{}).Where("id = ?", id).Updates(map[string]any{
		"senha":                   hash,
		"precisa_redefinir_senha": precisaRedefinir,
	}).Error
}

// Lookup é usado na renovação de sessão: usuário precisa existir e estar ativo
func Lookup(db *gorm.DB, userID uint) (isAdmin bool, ok bool) {
	u, err := NewRepository().FindByID(db, userID)
	if err != nil || !u.Ativo {
		return false, false
	}
	return u.IsAdmin, true
}

// EnsureAdmin cria ou atualiza um administrador ativo com a senha informada
func EnsureAdmin(db *gorm.DB, nome, email, hash string) (*Usuario, bool, error) {
	repo := NewRepository()
	u, err := repo.FindByEmail(db, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = &Usuario{Nome: nome, Email: email, Senha: hash, IsAdmin: true, Ativo: true}
		return u, true, repo.Save(db, u)
	}
	if err != nil {
		return nil, false, err
	}
	if nome != "" {
		u.Nome = nome
	}
	u.Senha = hash
	u.IsAdmin = true
	u.Ativo = true
	u.PrecisaRedefinirSenha = false
	return u, false, db.Save(u).Error
}
