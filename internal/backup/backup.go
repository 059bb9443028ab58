// Package backup exporta o banco inteiro em um documento JSON (arquivo local ou
// S3) e copia os dados do SQLite local para o PostgreSQL de produção.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/KromaEnergia/api-erp/internal/esquema"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Documento é o formato do arquivo de backup
type Documento struct {
	GeradoEm time.Time                   `json:"geradoEm"`
	Tabelas  map[string][]map[string]any `json:"tabelas"`
}

// Gerar lê todas as tabelas linha a linha como mapas de coluna -> valor
func Gerar(ctx context.Context, db *gorm.DB, agora time.Time) (*Documento, error) {
	doc := &Documento{GeradoEm: agora, Tabelas: map[string][]map[string]any{}}
	for _, e := range esquema.Entidades() {
		tabela, err := e.Tabela(db)
		if err != nil {
			return nil, err
		}
		var linhas []map[string]any
		if err := db.WithContext(ctx).Table(tabela).Order("id").Find(&linhas).Error; err != nil {
			return nil, fmt.Errorf("erro ao ler %s: %w", tabela, err)
		}
		if linhas == nil {
			linhas = []map[string]any{}
		}
		doc.Tabelas[tabela] = linhas
	}
	return doc, nil
}

// Escrever grava o documento como JSON indentado
func Escrever(w io.Writer, doc *Documento) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Chave monta o nome do objeto no S3: backups/<timestamp>-<uuid>.json
func Chave(agora time.Time) string {
	return fmt.Sprintf("backups/%s-%s.json", agora.UTC().Format("20060102T150405Z"), uuid.NewString())
}

// Contagem resume quantas linhas cada tabela tem no documento
func (d *Documento) Contagem() map[string]int {
	out := make(map[string]int, len(d.Tabelas))
	for t, linhas := range d.Tabelas {
		out[t] = len(linhas)
	}
	return out
}
