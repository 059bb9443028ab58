package usuario

import "github.com/KromaEnergia/api-erp/internal/auth"

// LoginRequest é usado em POST /auth/login
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type LoginResponse struct {
	auth.TokenResponse
	PrecisaRedefinirSenha bool `json:"precisaRedefinirSenha"`
}

// CreateUsuarioRequest é usado em POST /usuarios
type CreateUsuarioRequest struct {
	Nome    string `json:"nome" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Senha   string `json:"senha" validate:"required,min=8"`
	IsAdmin bool   `json:"isAdmin"`
}

// UpdateUsuarioRequest é usado em PUT /usuarios/{id}; campos omitidos não mudam
type UpdateUsuarioRequest struct {
	Nome    *string `json:"nome,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	IsAdmin *bool   `json:"isAdmin,omitempty"`
	Ativo   *bool   `json:"ativo,omitempty"`
}

// AlterarSenhaRequest é usado em PUT /usuarios/me/senha
type AlterarSenhaRequest struct {
	Atual string `json:"atual" validate:"required"`
	Nova  string `json:"nova" validate:"required,min=8"`
}

type SenhaTemporariaResponse struct {
	SenhaTemporaria string `json:"senhaTemporaria"`
}
