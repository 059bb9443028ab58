package backup

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/api-erp/internal/esquema"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const tamanhoLote = 200

// Resultado da sincronização por tabela
type Resultado struct {
	Tabela string
	Linhas int
}

// Sincronizar copia todas as tabelas de origem para destino, em ordem de
// dependência, com upsert pela chave primária. Cada tabela roda na sua transação.
func Sincronizar(ctx context.Context, origem, destino *gorm.DB, log *zap.Logger) ([]Resultado, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := esquema.Migrar(destino); err != nil {
		return nil, err
	}

	var out []Resultado
	for _, e := range esquema.Entidades() {
		tabela, err := e.Tabela(origem)
		if err != nil {
			return out, err
		}
		linhas := e.Lista()
		res := origem.WithContext(ctx).Unscoped().Order("id").Find(linhas)
		if res.Error != nil {
			return out, fmt.Errorf("erro ao ler %s: %w", tabela, res.Error)
		}
		n := int(res.RowsAffected)
		if n > 0 {
			err = destino.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				err := tx.Omit(clause.Associations).
					Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
					CreateInBatches(linhas, tamanhoLote).Error
				if err != nil {
					return err
				}
				return ajustarSequencia(tx, tabela)
			})
			if err != nil {
				return out, fmt.Errorf("erro ao gravar %s: %w", tabela, err)
			}
		}
		log.Info("tabela sincronizada", zap.String("tabela", tabela), zap.Int("linhas", n))
		out = append(out, Resultado{Tabela: tabela, Linhas: n})
	}
	return out, nil
}

// ajustarSequencia alinha a sequência do id no postgres após inserir ids explícitos
func ajustarSequencia(tx *gorm.DB, tabela string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))", tabela, tabela),
	).Error
}
