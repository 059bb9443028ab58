package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTTL é a validade do access token
const AccessTTL = 15 * time.Minute

// tolerância para relógios adiantados
const folgaRelogio = time.Minute

// ErrTokenInvalido envolve qualquer falha de assinatura, emissor, audiência ou validade
var ErrTokenInvalido = errors.New("token inválido")

// Claims do access token (RBAC simples: IsAdmin)
type Claims struct {
	UserID  uint `json:"userId"`
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

func novasClaims(userID uint, isAdmin bool, agora time.Time) *Claims {
	return &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    getIssuer(),
			Audience:  jwt.ClaimStrings{getAudience()},
			IssuedAt:  jwt.NewNumericDate(agora),
			NotBefore: jwt.NewNumericDate(agora.Add(-folgaRelogio)),
			ExpiresAt: jwt.NewNumericDate(agora.Add(AccessTTL)),
		},
	}
}

// GenerateAccessToken assina com a chave ativa e publica o kid no cabeçalho
func GenerateAccessToken(userID uint, isAdmin bool) (string, error) {
	if err := mustInitKeys(); err != nil {
		return "", err
	}
	tok := jwt.NewWithClaims(signMethod(), novasClaims(userID, isAdmin, time.Now()))
	tok.Header["kid"] = getKID()
	s, err := tok.SignedString(getPriv())
	if err != nil {
		return "", fmt.Errorf("erro ao assinar token: %w", err)
	}
	return s, nil
}

func chavePorKID(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("kid ausente")
	}
	if pub, ok := getPub(kid); ok {
		return pub, nil
	}
	return nil, fmt.Errorf("kid desconhecido: %s", kid)
}

func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signMethod().Alg()}),
		jwt.WithIssuer(getIssuer()),
		jwt.WithAudience(getAudience()),
		jwt.WithExpirationRequired(),
	)
	var claims Claims
	tok, err := parser.ParseWithClaims(tokenStr, &claims, chavePorKID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	}
	if !tok.Valid {
		return nil, ErrTokenInvalido
	}
	return &claims, nil
}
