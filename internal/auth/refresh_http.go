package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-erp/internal/logger"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"

	// cobre /auth/refresh e /auth/logout
	caminhoCookie = "/auth"
)

// UserLookup confere se o usuário do refresh ainda pode entrar e devolve o papel atual
type UserLookup func(db *gorm.DB, userID uint) (isAdmin bool, ok bool)

// TokenResponse é o corpo devolvido no login e no refresh
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func NewTokenResponse(access string) TokenResponse {
	return TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(AccessTTL.Seconds())}
}

func novoSegredo() (valor, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	valor = base64.RawURLEncoding.EncodeToString(b)
	return valor, hashSegredo(valor), nil
}

func hashSegredo(valor string) string {
	h := sha256.Sum256([]byte(valor))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// gravarCookie com valor vazio apaga o cookie. Secure segue auth.cookie_secure
// para permitir http em localhost.
func gravarCookie(w http.ResponseWriter, valor string, expira time.Time) {
	c := &http.Cookie{
		Name:     RefreshCookie,
		Value:    valor,
		Path:     caminhoCookie,
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
	}
	if valor == "" {
		c.MaxAge = -1
	} else {
		c.Expires = expira
	}
	http.SetCookie(w, c)
}

func emitirRefresh(db *gorm.DB, w http.ResponseWriter, usuarioID uint, familia string, isAdmin bool) error {
	valor, hash, err := novoSegredo()
	if err != nil {
		return err
	}
	rt := RefreshToken{
		UsuarioID: usuarioID,
		Familia:   familia,
		Hash:      hash,
		IsAdmin:   isAdmin,
		ExpiraEm:  time.Now().Add(RefreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return err
	}
	gravarCookie(w, valor, rt.ExpiraEm)
	return nil
}

func revogar(ctx context.Context, q *gorm.DB, agora time.Time) {
	if err := q.Update("revogado_em", &agora).Error; err != nil {
		logger.FromContext(ctx).Warn("erro ao revogar refresh token", zap.Error(err))
	}
}

// IssueTokensOnLogin é chamado no login após validar usuário e senha.
// Cada login abre uma nova família de refresh tokens.
func IssueTokensOnLogin(db *gorm.DB, w http.ResponseWriter, userID uint, isAdmin bool) (string, error) {
	access, err := GenerateAccessToken(userID, isAdmin)
	if err != nil {
		return "", err
	}
	if err := emitirRefresh(db, w, userID, uuid.NewString(), isAdmin); err != nil {
		return "", err
	}
	return access, nil
}

// POST /auth/refresh
// Rotaciona o refresh token. Reapresentar um token já revogado revoga a família inteira.
func RefreshHTTPHandler(db *gorm.DB, lookup UserLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		negar := func(msg string) {
			gravarCookie(w, "", time.Time{})
			http.Error(w, msg, http.StatusUnauthorized)
		}

		c, err := r.Cookie(RefreshCookie)
		if err != nil || c.Value == "" {
			http.Error(w, "refresh ausente", http.StatusUnauthorized)
			return
		}

		var atual RefreshToken
		if err := db.WithContext(ctx).Where("hash = ?", hashSegredo(c.Value)).First(&atual).Error; err != nil {
			negar("refresh inválido")
			return
		}
		agora := time.Now()
		switch {
		case atual.Revogado():
			logger.FromContext(ctx).Warn("refresh reutilizado; revogando família",
				zap.Uint("usuario_id", atual.UsuarioID), zap.String("familia", atual.Familia))
			revogar(ctx, db.WithContext(ctx).Model(&RefreshToken{}).
				Where("familia = ? AND revogado_em IS NULL", atual.Familia), agora)
			negar("refresh reutilizado")
			return
		case atual.Expirado(agora):
			negar("refresh expirado")
			return
		}

		isAdmin := atual.IsAdmin
		if lookup != nil {
			var ok bool
			if isAdmin, ok = lookup(db.WithContext(ctx), atual.UsuarioID); !ok {
				revogar(ctx, db.WithContext(ctx).Model(&atual), agora)
				negar("usuário inativo")
				return
			}
		}

		var access string
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&atual).Update("revogado_em", &agora).Error; err != nil {
				return err
			}
			if access, err = GenerateAccessToken(atual.UsuarioID, isAdmin); err != nil {
				return err
			}
			return emitirRefresh(tx, w, atual.UsuarioID, atual.Familia, isAdmin)
		})
		if err != nil {
			logger.FromContext(ctx).Error("erro ao renovar sessão", zap.Error(err))
			gravarCookie(w, "", time.Time{})
			http.Error(w, "erro ao renovar sessão", http.StatusInternalServerError)
			return
		}

		utils.ResponderJSON(w, http.StatusOK, NewTokenResponse(access))
	}
}

// POST /auth/logout
func LogoutHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
			revogar(r.Context(), db.WithContext(r.Context()).Model(&RefreshToken{}).
				Where("hash = ?", hashSegredo(c.Value)), time.Now())
		}
		gravarCookie(w, "", time.Time{})
		w.WriteHeader(http.StatusNoContent)
	}
}
