package auth

import "time"

// RefreshToken guarda só o hash do valor entregue no cookie. Tokens emitidos a
// partir do mesmo login compartilham a Familia.
type RefreshToken struct {
	ID         uint      `gorm:"primaryKey"`
	UsuarioID  uint      `gorm:"index;not null"`
	Familia    string    `gorm:"size:36;index;not null"`
	Hash       string    `gorm:"size:64;uniqueIndex;not null"`
	IsAdmin    bool      `gorm:"not null"`
	ExpiraEm   time.Time `gorm:"index"`
	RevogadoEm *time.Time
	CreatedAt  time.Time
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (rt *RefreshToken) Revogado() bool { return rt.RevogadoEm != nil }

func (rt *RefreshToken) Expirado(agora time.Time) bool { return agora.After(rt.ExpiraEm) }
