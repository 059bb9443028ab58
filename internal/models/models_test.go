package models

import (
	"testing"
	"time"

	"github.com/KromaEnergia/api-erp/internal/utils/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type registro struct {
	ID    uint
	Nome  string
	Doc   string
	Ativo bool
}

func TestEscopos(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer db.Close(database)
	require.NoError(t, database.AutoMigrate(&registro{}))

	require.NoError(t, database.Create(&[]registro{
		{Nome: "Padaria Central", Doc: "111", Ativo: true},
		{Nome: "Oficina Sul", Doc: "222", Ativo: true},
		{Nome: "Padaria Norte", Doc: "333", Ativo: true},
	}).Error)
	require.NoError(t, Desativar(database, &registro{}, 3))
	assert.Error(t, Desativar(database, &registro{}, 99))

	var list []registro
	require.NoError(t, database.Scopes(Ativos(false), Busca("padaria", "nome", "doc")).Find(&list).Error)
	assert.Len(t, list, 1)

	require.NoError(t, database.Scopes(Ativos(true), Busca("PADARIA", "nome", "doc")).Find(&list).Error)
	assert.Len(t, list, 2)

	require.NoError(t, database.Scopes(Ativos(false), Busca("222", "nome", "doc")).Find(&list).Error)
	require.Len(t, list, 1)
	assert.Equal(t, "Oficina Sul", list[0].Nome)
}

func TestBusca_CuringasLiterais(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer db.Close(database)
	require.NoError(t, database.AutoMigrate(&registro{}))

	require.NoError(t, database.Create(&[]registro{
		{Nome: "Desconto 10% à vista", Doc: "a_b", Ativo: true},
		{Nome: "Oficina Sul", Doc: "axb", Ativo: true},
		{Nome: `Barra \ invertida`, Doc: "c", Ativo: true},
	}).Error)

	var list []registro
	require.NoError(t, database.Scopes(Busca("%", "nome", "doc")).Find(&list).Error)
	require.Len(t, list, 1)
	assert.Equal(t, "Desconto 10% à vista", list[0].Nome)

	require.NoError(t, database.Scopes(Busca("a_b", "nome", "doc")).Find(&list).Error)
	require.Len(t, list, 1)
	assert.Equal(t, "a_b", list[0].Doc)

	require.NoError(t, database.Scopes(Busca("_", "doc")).Find(&list).Error)
	assert.Len(t, list, 1)

	require.NoError(t, database.Scopes(Busca(`\`, "nome")).Find(&list).Error)
	require.Len(t, list, 1)
	assert.Equal(t, "c", list[0].Doc)
}

type travavel struct {
	ID        uint
	Ativo     bool
	UpdatedAt time.Time
}

func TestTravar(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer db.Close(database)
	require.NoError(t, database.AutoMigrate(&travavel{}))
	require.NoError(t, database.Create(&[]travavel{{Ativo: true}, {Ativo: true}}).Error)
	require.NoError(t, Desativar(database, &travavel{}, 2))

	err = database.Transaction(func(tx *gorm.DB) error {
		return Travar(tx, &travavel{}, 1)
	})
	assert.NoError(t, err)

	assert.ErrorIs(t, Travar(database, &travavel{}, 2), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, Travar(database, &travavel{}, 99), gorm.ErrRecordNotFound)
}

func TestEndereco(t *testing.T) {
	e := Endereco{CEP: "01310-100", Logradouro: "Av. Paulista", Numero: "1000", Bairro: "Bela Vista", Cidade: "São Paulo", UF: "sp"}
	e.Normalizar()
	assert.Equal(t, "01310100", e.CEP)
	assert.Equal(t, "SP", e.UF)
	assert.Equal(t, "Av. Paulista, 1000 - Bela Vista - São Paulo/SP - CEP 01310-100", e.Linha())
}
