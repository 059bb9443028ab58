package solar

import (
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/shopspring/decimal"
)

type PainelSolar struct {
	ID                   uint            `gorm:"primaryKey" json:"id" yaml:"-"`
	Fabricante           string          `gorm:"size:100;not null" json:"fabricante" yaml:"fabricante"`
	Modelo               string          `gorm:"size:100;not null" json:"modelo" yaml:"modelo"`
	PotenciaW            float64         `gorm:"not null" json:"potenciaW" yaml:"potencia_w"`
	EficienciaPercentual float64         `json:"eficienciaPercentual" yaml:"eficiencia_percentual"`
	AreaM2               float64         `json:"areaM2" yaml:"area_m2"`
	Preco                decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"preco" yaml:"-"`
	Ativo                bool            `gorm:"not null;index" json:"ativo" yaml:"-"`
	CreatedAt            time.Time       `json:"createdAt" yaml:"-"`
	UpdatedAt            time.Time       `json:"updatedAt" yaml:"-"`
}

func (PainelSolar) TableName() string { return "paineis_solares" }

func (p PainelSolar) Nome() string { return p.Fabricante + " " + p.Modelo }

type Inversor struct {
	ID         uint            `gorm:"primaryKey" json:"id" yaml:"-"`
	Fabricante string          `gorm:"size:100;not null" json:"fabricante" yaml:"fabricante"`
	Modelo     string          `gorm:"size:100;not null" json:"modelo" yaml:"modelo"`
	PotenciaKW float64         `gorm:"not null" json:"potenciaKw" yaml:"potencia_kw"`
	Fases      int             `gorm:"not null" json:"fases" yaml:"fases"`
	Preco      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"preco" yaml:"-"`
	Ativo      bool            `gorm:"not null;index" json:"ativo" yaml:"-"`
	CreatedAt  time.Time       `json:"createdAt" yaml:"-"`
	UpdatedAt  time.Time       `json:"updatedAt" yaml:"-"`
}

func (Inversor) TableName() string { return "inversores" }

func (i Inversor) Nome() string { return i.Fabricante + " " + i.Modelo }

// ProjetoSolar guarda as entradas e o resultado do último cálculo
type ProjetoSolar struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Nome        string           `gorm:"size:200;not null" json:"nome"`
	ClienteID   uint             `gorm:"not null;index" json:"clienteId"`
	Cliente     *cliente.Cliente `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	PainelID    *uint            `gorm:"index" json:"painelId"`
	Painel      *PainelSolar     `gorm:"foreignKey:PainelID" json:"painel,omitempty"`
	InversorID  *uint            `gorm:"index" json:"inversorId"`
	Inversor    *Inversor        `gorm:"foreignKey:InversorID" json:"inversor,omitempty"`
	Parametros  Parametros       `gorm:"embedded" json:"parametros"`
	Resultado   Resultado        `gorm:"embedded;embeddedPrefix:res_" json:"resultado"`
	PropostaID  *uint            `gorm:"index" json:"propostaId"`
	Observacoes string           `gorm:"type:text" json:"observacoes"`
	Ativo       bool             `gorm:"not null;index" json:"ativo"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (ProjetoSolar) TableName() string { return "projetos_solares" }
