package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	keysMu sync.RWMutex

	privKey      *rsa.PrivateKey
	pubKeys      = map[string]*rsa.PublicKey{} // kid -> pub
	activeKID    string
	issuer       string
	audience     string
	secureCookie bool
)

// ErrChavesNaoCarregadas é devolvido quando Init ainda não foi chamado
var ErrChavesNaoCarregadas = errors.New("chaves de assinatura não carregadas")

// Init carrega a chave privada RSA (PKCS#1 ou PKCS#8) indicada na configuração.
// Sem caminho configurado, fora de produção, gera uma chave efêmera; o retorno
// ephemeral avisa o chamador para registrar o fato.
func Init(cfg config.AuthConfig, production bool) (ephemeral bool, err error) {
	if cfg.KID == "" || cfg.Issuer == "" || cfg.Audience == "" {
		return false, errors.New("configuração de auth incompleta: kid/issuer/audience")
	}

	var key *rsa.PrivateKey
	if cfg.RSAPrivatePath == "" {
		if production {
			return false, errors.New("auth.rsa_private_path é obrigatório em produção")
		}
		key, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return false, fmt.Errorf("gerar chave efêmera: %w", err)
		}
		ephemeral = true
	} else {
		b, err := os.ReadFile(cfg.RSAPrivatePath)
		if err != nil {
			return false, fmt.Errorf("read private key: %w", err)
		}
		key, err = ParsePrivateKeyPEM(b)
		if err != nil {
			return false, err
		}
	}

	keysMu.Lock()
	defer keysMu.Unlock()
	privKey = key
	activeKID = cfg.KID
	issuer = cfg.Issuer
	audience = cfg.Audience
	secureCookie = cfg.CookieSecure
	pubKeys = map[string]*rsa.PublicKey{cfg.KID: &key.PublicKey}
	return ephemeral, nil
}

// ParsePrivateKeyPEM aceita PKCS#1 ou PKCS#8
func ParsePrivateKeyPEM(b []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("pem decode private key failed")
	}

	var pk any
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		pk = k
	} else if k8, err2 := x509.ParsePKCS8PrivateKey(block.Bytes); err2 == nil {
		pk = k8
	} else {
		return nil, fmt.Errorf("parse private key: %v / %v", err, err2)
	}

	key, ok := pk.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return key, nil
}

func mustInitKeys() error {
	keysMu.RLock()
	defer keysMu.RUnlock()
	if privKey == nil {
		return ErrChavesNaoCarregadas
	}
	return nil
}

func getPriv() *rsa.PrivateKey {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return privKey
}

func getPub(kid string) (*rsa.PublicKey, bool) {
	keysMu.RLock()
	defer keysMu.RUnlock()
	p, ok := pubKeys[kid]
	return p, ok
}

func getKID() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return activeKID
}

func getIssuer() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return issuer
}

func getAudience() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return audience
}

func cookieSecure() bool {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return secureCookie
}

func signMethod() jwt.SigningMethod { return jwt.SigningMethodRS256 }
