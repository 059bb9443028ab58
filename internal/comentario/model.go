package comentario

import "gorm.io/gorm"

const (
	RefOrdemServico = "ordem_servico"
	RefProposta     = "proposta"
)

// tabelas liga cada referência à tabela do registro comentado
var tabelas = map[string]string{
	RefOrdemServico: "ordens_servico",
	RefProposta:     "propostas",
}

// Comentario é uma anotação de usuário ou um registro de histórico gerado pelo sistema
type Comentario struct {
	gorm.Model
	Texto        string `gorm:"type:text;not null" json:"texto"`
	Referencia   string `gorm:"size:20;not null;index:idx_comentario_ref" json:"referencia"`
	ReferenciaID uint   `gorm:"not null;index:idx_comentario_ref" json:"referenciaId"`
	UsuarioID    *uint  `gorm:"index" json:"usuarioId"`
	Sistema      bool   `gorm:"not null" json:"sistema"`
}
