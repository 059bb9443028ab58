package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// TamanhoSenhaTemporaria é o tamanho da senha gerada pelo administrador
const TamanhoSenhaTemporaria = 12

// sem 0/O, 1/l/I
const alfabetoSenha = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func HashSenha(senha string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}
	return string(b), nil
}

func VerificarSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// GerarSenhaTemporaria sorteia os caracteres com crypto/rand
func GerarSenhaTemporaria() (string, error) {
	limite := big.NewInt(int64(len(alfabetoSenha)))
	var sb strings.Builder
	sb.Grow(TamanhoSenhaTemporaria)
	for sb.Len() < TamanhoSenhaTemporaria {
		n, err := rand.Int(rand.Reader, limite)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alfabetoSenha[n.Int64()])
	}
	return sb.String(), nil
}
