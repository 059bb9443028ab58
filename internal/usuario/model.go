package usuario

import "time"

type Usuario struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Nome                  string    `gorm:"size:120;not null" json:"nome"`
	Email                 string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Senha                 string    `gorm:"size:255;not null" json:"-"`
	IsAdmin               bool      `gorm:"not null" json:"isAdmin"`
	Ativo                 bool      `gorm:"not null;index" json:"ativo"`
	PrecisaRedefinirSenha bool      `gorm:"not null" json:"precisaRedefinirSenha"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
