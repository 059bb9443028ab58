package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Ativos filtra registros desativados, a menos que incluirInativos seja true
func Ativos(incluirInativos bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if incluirInativos {
			return db
		}
		return db.Where("ativo = ?", true)
	}
}

var escaparLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Busca aplica LIKE case-insensitive do termo sobre as colunas informadas;
// % e _ do termo valem literalmente
func Busca(termo string, colunas ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		termo = strings.TrimSpace(termo)
		if termo == "" || len(colunas) == 0 {
			return db
		}
		like := "%" + escaparLike.Replace(strings.ToLower(termo)) + "%"
		conds := make([]string, len(colunas))
		args := make([]any, len(colunas))
		for i, c := range colunas {
			conds[i] = "LOWER(" + c + ") LIKE ? ESCAPE '\\'"
			args[i] = like
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// Desativar marca ativo=false; devolve gorm.ErrRecordNotFound se nada mudou
func Desativar(db *gorm.DB, model any, id uint) error {
	res := db.Model(model).Where("id = ?", id).Update("ativo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Travar toca updated_at da linha ativa, segurando o lock de escrita até o fim
// da transação; linhas inativas ou ausentes dão gorm.ErrRecordNotFound
func Travar(tx *gorm.DB, model any, id uint) error {
	res := tx.Model(model).Where("id = ? AND ativo = ?", id, true).Update("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
