package solar

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed/catalogo.yaml
var catalogoYAML []byte

type itemSeed struct {
	Preco string `yaml:"preco"`
}

type painelSeed struct {
	PainelSolar `yaml:",inline"`
	itemSeed    `yaml:",inline"`
}

type inversorSeed struct {
	Inversor `yaml:",inline"`
	itemSeed `yaml:",inline"`
}

// Catalogo é o conteúdo do arquivo de carga inicial
type Catalogo struct {
	Paineis    []PainelSolar
	Inversores []Inversor
}

// CarregarCatalogo lê o YAML de catálogo (o embutido quando data é nil)
func CarregarCatalogo(data []byte) (*Catalogo, error) {
	if data == nil {
		data = catalogoYAML
	}
	var raw struct {
		Paineis    []painelSeed   `yaml:"paineis"`
		Inversores []inversorSeed `yaml:"inversores"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("erro ao ler catálogo: %w", err)
	}

	c := &Catalogo{}
	for _, p := range raw.Paineis {
		preco, err := decimal.NewFromString(p.itemSeed.Preco)
		if err != nil {
			return nil, fmt.Errorf("preço inválido para o painel %s: %w", p.Modelo, err)
		}
		painel := p.PainelSolar
		painel.Preco = preco
		painel.Ativo = true
		c.Paineis = append(c.Paineis, painel)
	}
	for _, i := range raw.Inversores {
		preco, err := decimal.NewFromString(i.itemSeed.Preco)
		if err != nil {
			return nil, fmt.Errorf("preço inválido para o inversor %s: %w", i.Modelo, err)
		}
		inv := i.Inversor
		inv.Preco = preco
		inv.Ativo = true
		c.Inversores = append(c.Inversores, inv)
	}
	return c, nil
}

// SemearCatalogo grava o catálogo embutido quando as duas tabelas estão vazias.
// Devolve quantos painéis e inversores foram inseridos.
func SemearCatalogo(db *gorm.DB) (int, int, error) {
	var paineis, inversores int64
	if err := db.Model(&PainelSolar{}).Count(&paineis).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&Inversor{}).Count(&inversores).Error; err != nil {
		return 0, 0, err
	}
	if paineis > 0 || inversores > 0 {
		return 0, 0, nil
	}

	c, err := CarregarCatalogo(nil)
	if err != nil {
		return 0, 0, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c.Paineis).Error; err != nil {
			return err
		}
		return tx.Create(&c.Inversores).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return len(c.Paineis), len(c.Inversores), nil
}
