// Package esquema lista as tabelas da aplicação em ordem de dependência e
// aplica o AutoMigrate.
package esquema

import (
	"fmt"

	"github.com/KromaEnergia/api-erp/internal/auth"
	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/configuracao"
	"github.com/KromaEnergia/api-erp/internal/financeiro"
	"github.com/KromaEnergia/api-erp/internal/fornecedor"
	"github.com/KromaEnergia/api-erp/internal/ordemservico"
	"github.com/KromaEnergia/api-erp/internal/precificacao"
	"github.com/KromaEnergia/api-erp/internal/produto"
	"github.com/KromaEnergia/api-erp/internal/proposta"
	"github.com/KromaEnergia/api-erp/internal/solar"
	"github.com/KromaEnergia/api-erp/internal/usuario"
	"gorm.io/gorm"
)

// Entidade liga um modelo gorm à fábrica de slices usada na cópia entre bancos
type Entidade struct {
	Modelo any
	Lista  func() any
}

// Tabela devolve o nome da tabela do modelo
func (e Entidade) Tabela(db *gorm.DB) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(e.Modelo); err != nil {
		return "", fmt.Errorf("erro ao ler modelo %T: %w", e.Modelo, err)
	}
	return stmt.Schema.Table, nil
}

func entidade[T any]() Entidade {
	return Entidade{
		Modelo: new(T),
		Lista:  func() any { return &[]T{} },
	}
}

// Entidades em ordem: tabelas referenciadas vêm antes de quem as referencia
func Entidades() []Entidade {
	return []Entidade{
		entidade[usuario.Usuario](),
		entidade[auth.RefreshToken](),
		entidade[configuracao.ConfiguracaoEmpresa](),
		entidade[cliente.Cliente](),
		entidade[fornecedor.Fornecedor](),
		entidade[produto.Produto](),
		entidade[solar.PainelSolar](),
		entidade[solar.Inversor](),
		entidade[solar.ProjetoSolar](),
		entidade[proposta.PropostaComercial](),
		entidade[proposta.ItemProposta](),
		entidade[proposta.ParcelaProposta](),
		entidade[ordemservico.OrdemServico](),
		entidade[ordemservico.ItemOrdemServico](),
		entidade[comentario.Comentario](),
		entidade[financeiro.LancamentoFinanceiro](),
		entidade[precificacao.SimulacaoPrecificacao](),
	}
}

// Modelos devolve só os modelos, na mesma ordem
func Modelos() []any {
	ents := Entidades()
	out := make([]any, len(ents))
	for i, e := range ents {
		out[i] = e.Modelo
	}
	return out
}

// Migrar cria ou atualiza todas as tabelas
func Migrar(db *gorm.DB) error {
	if err := db.AutoMigrate(Modelos()...); err != nil {
		return fmt.Errorf("erro ao migrar banco: %w", err)
	}
	return nil
}
