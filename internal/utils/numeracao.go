package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const tentativasNumeracao = 5

// ProximoNumero gera números sequenciais por ano no formato PREFIXO-AAAA-NNNN,
// a partir do maior número já gravado na tabela com o mesmo prefixo e ano.
func ProximoNumero(tx *gorm.DB, tabela, prefixo string, agora time.Time) (string, error) {
	base := fmt.Sprintf("%s-%d-", prefixo, agora.Year())
	var ultimos []string
	err := tx.Table(tabela).Where("numero LIKE ?", base+"%").
		Order("LENGTH(numero) DESC, numero DESC").Limit(1).Pluck("numero", &ultimos).Error
	if err != nil {
		return "", fmt.Errorf("erro ao gerar numeração: %w", err)
	}
	seq := 0
	if len(ultimos) > 0 {
		if seq, err = strconv.Atoi(strings.TrimPrefix(ultimos[0], base)); err != nil {
			return "", fmt.Errorf("numeração inesperada %q: %w", ultimos[0], err)
		}
	}
	return fmt.Sprintf("%s%04d", base, seq+1), nil
}

// Numerar chama gravar com o próximo número dentro de um savepoint e tenta de
// novo quando outra transação já gravou o mesmo número.
// Exige um gorm.DB com TranslateError ativo.
func Numerar(tx *gorm.DB, tabela, prefixo string, agora time.Time, gravar func(sp *gorm.DB, numero string) error) error {
	var err error
	for i := 0; i < tentativasNumeracao; i++ {
		err = tx.Transaction(func(sp *gorm.DB) error {
			numero, err := ProximoNumero(sp, tabela, prefixo, agora)
			if err != nil {
				return err
			}
			return gravar(sp, numero)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return fmt.Errorf("erro ao gerar numeração após %d tentativas: %w", tentativasNumeracao, err)
}
