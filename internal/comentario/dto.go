package comentario

import (
	"time"

	"gorm.io/gorm"
)

type AutorDTO struct {
	Tipo string `json:"tipo"` // "usuario" | "sistema"
	ID   *uint  `json:"id,omitempty"`
	Nome string `json:"nome"`
}

type ComentarioDTO struct {
	ID           uint      `json:"id"`
	Referencia   string    `json:"referencia"`
	ReferenciaID uint      `json:"referenciaId"`
	Texto        string    `json:"texto"`
	Sistema      bool      `json:"sistema"`
	CreatedAt    time.Time `json:"createdAt"`
	Autor        AutorDTO  `json:"autor"`
}

// CriarComentarioRequest é o corpo de POST .../comentarios e PUT /comentarios/{id}
type CriarComentarioRequest struct {
	Texto string `json:"texto" validate:"required"`
}

func toDTO(c Comentario, nomes map[uint]string) ComentarioDTO {
	out := ComentarioDTO{
		ID:           c.ID,
		Referencia:   c.Referencia,
		ReferenciaID: c.ReferenciaID,
		Texto:        c.Texto,
		Sistema:      c.Sistema,
		CreatedAt:    c.CreatedAt,
	}
	switch {
	case c.Sistema:
		out.Autor = AutorDTO{Tipo: "sistema", Nome: "Sistema"}
	case c.UsuarioID != nil:
		nome := nomes[*c.UsuarioID]
		if nome == "" {
			nome = "Usuário"
		}
		out.Autor = AutorDTO{Tipo: "usuario", ID: c.UsuarioID, Nome: nome}
	default:
		out.Autor = AutorDTO{Tipo: "usuario", Nome: "Usuário"}
	}
	return out
}

// toDTOs resolve os nomes dos autores em uma única consulta
func toDTOs(db *gorm.DB, list []Comentario) ([]ComentarioDTO, error) {
	ids := make([]uint, 0, len(list))
	for _, c := range list {
		if c.UsuarioID != nil {
			ids = append(ids, *c.UsuarioID)
		}
	}

	nomes := map[uint]string{}
	if len(ids) > 0 {
		var autores []struct {
			ID   uint
			Nome string
		}
		if err := db.Table("usuarios").Select("id, nome").Where("id IN ?", ids).Scan(&autores).Error; err != nil {
			return nil, err
		}
		for _, a := range autores {
			nomes[a.ID] = a.Nome
		}
	}

	out := make([]ComentarioDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c, nomes))
	}
	return out, nil
}

// Listar devolve o histórico de um registro já com os autores resolvidos
func Listar(db *gorm.DB, referencia string, id uint) ([]ComentarioDTO, error) {
	list, err := NewRepository().ListarPorReferencia(db, referencia, id)
	if err != nil {
		return nil, err
	}
	return toDTOs(db, list)
}
