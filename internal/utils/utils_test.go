package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/KromaEnergia/api-erp/internal/utils/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHashSenha(t *testing.T) {
	hash, err := HashSenha("segredo123")
	require.NoError(t, err)
	assert.True(t, VerificarSenha(hash, "segredo123"))
	assert.False(t, VerificarSenha(hash, "outra"))
}

func TestGerarSenhaTemporaria(t *testing.T) {
	a, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	b, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	assert.Len(t, a, TamanhoSenhaTemporaria)
	assert.NotEqual(t, a, b)
	assert.False(t, strings.ContainsAny(a+b, "0O1lI"))
}

func TestDocumentos(t *testing.T) {
	assert.Equal(t, "11222333000181", SomenteDigitos("11.222.333/0001-81"))
	assert.True(t, CNPJValido("11.222.333/0001-81"))
	assert.False(t, CNPJValido("11.222.333/0001-82"))
	assert.False(t, CNPJValido("11111111111111"))
	assert.True(t, CPFValido("529.982.247-25"))
	assert.False(t, CPFValido("529.982.247-26"))
	assert.False(t, CPFValido("123"))
}

type dtoTeste struct {
	Nome      string `validate:"required"`
	Email     string `validate:"omitempty,email"`
	Documento string `validate:"omitempty,cpfcnpj"`
	Tipo      string `validate:"oneof=PF PJ"`
}

func TestValidar(t *testing.T) {
	assert.NoError(t, Validar(dtoTeste{Nome: "A", Tipo: "PF", Documento: "52998224725"}))

	err := Validar(dtoTeste{Tipo: "PF"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nome")
	assert.Contains(t, err.Error(), "obrigatório")

	err = Validar(dtoTeste{Nome: "A", Tipo: "XX"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PF PJ")

	err = Validar(dtoTeste{Nome: "A", Tipo: "PJ", Documento: "123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "documento válido")
}

func TestProximoNumero_Postgres(t *testing.T) {
	m := testutil.NewMockDB(t)
	m.Mock.ExpectQuery(`SELECT .*numero.* FROM "ordem_servicos" WHERE numero LIKE \$1 ORDER BY LENGTH\(numero\) DESC, numero DESC LIMIT \$2`).
		WithArgs("OS-2026-%", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"numero"}).AddRow("OS-2026-0041"))

	numero, err := ProximoNumero(m.DB, "ordem_servicos", "OS", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "OS-2026-0042", numero)
	m.ExpectationsWereMet(t)
}

func TestProximoNumero_SQLite(t *testing.T) {
	type ordem struct {
		ID     uint
		Numero string
	}
	database := testutil.NewDB(t, &ordem{})
	agora := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	n, err := ProximoNumero(database, "ordems", "OS", agora)
	require.NoError(t, err)
	assert.Equal(t, "OS-2026-0001", n)

	require.NoError(t, database.Create(&ordem{Numero: n}).Error)
	require.NoError(t, database.Create(&ordem{Numero: "OS-2025-0007"}).Error)
	n, err = ProximoNumero(database, "ordems", "OS", agora)
	require.NoError(t, err)
	assert.Equal(t, "OS-2026-0002", n)
}

func TestProximoNumero_ComLacunas(t *testing.T) {
	type ordem struct {
		ID     uint
		Numero string `gorm:"uniqueIndex"`
	}
	database := testutil.NewDB(t, &ordem{})
	agora := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, database.Create(&[]ordem{{Numero: "OS-2026-0001"}, {Numero: "OS-2026-0003"}}).Error)

	n, err := ProximoNumero(database, "ordems", "OS", agora)
	require.NoError(t, err)
	assert.Equal(t, "OS-2026-0004", n)

	require.NoError(t, database.Create(&[]ordem{{Numero: "OS-2026-9999"}, {Numero: "OS-2026-10000"}}).Error)
	n, err = ProximoNumero(database, "ordems", "OS", agora)
	require.NoError(t, err)
	assert.Equal(t, "OS-2026-10001", n)
}

func TestNumerar_RepeteEmNumeroDuplicado(t *testing.T) {
	type ordem struct {
		ID     uint
		Numero string `gorm:"uniqueIndex"`
	}
	database := testutil.NewDB(t, &ordem{})
	agora := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, database.Create(&ordem{Numero: "OS-2026-0001"}).Error)

	// a primeira tentativa perde a corrida para outra gravação do mesmo número
	var tentativas []string
	err := database.Transaction(func(tx *gorm.DB) error {
		return Numerar(tx, "ordems", "OS", agora, func(sp *gorm.DB, numero string) error {
			tentativas = append(tentativas, numero)
			if len(tentativas) == 1 {
				if err := sp.Create(&ordem{Numero: numero}).Error; err != nil {
					return err
				}
			}
			return sp.Create(&ordem{Numero: numero}).Error
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"OS-2026-0002", "OS-2026-0002"}, tentativas)

	var numeros []string
	require.NoError(t, database.Model(&ordem{}).Order("id").Pluck("numero", &numeros).Error)
	assert.Equal(t, []string{"OS-2026-0001", "OS-2026-0002"}, numeros)
}

func TestNumerar_DesisteAposTentativas(t *testing.T) {
	database := testutil.NewDB(t)
	require.NoError(t, database.Exec("CREATE TABLE ordems (numero TEXT)").Error)

	chamadas := 0
	err := Numerar(database, "ordems", "OS", time.Now(), func(*gorm.DB, string) error {
		chamadas++
		return gorm.ErrDuplicatedKey
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, tentativasNumeracao, chamadas)

	err = Numerar(database, "ordems", "OS", time.Now(), func(*gorm.DB, string) error { return ErrIDInvalido })
	assert.ErrorIs(t, err, ErrIDInvalido)
}
