package esquema

import (
	"testing"

	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrar(t *testing.T) {
	database := testutil.NewDB(t)
	require.NoError(t, Migrar(database))

	nomes := map[string]bool{}
	for _, e := range Entidades() {
		tabela, err := e.Tabela(database)
		require.NoError(t, err)
		assert.True(t, database.Migrator().HasTable(tabela), tabela)
		assert.False(t, nomes[tabela], "tabela repetida: %s", tabela)
		nomes[tabela] = true
	}
	assert.True(t, nomes["ordens_servico"])
	assert.True(t, nomes["usuarios"])
	assert.Len(t, Modelos(), len(Entidades()))
}
