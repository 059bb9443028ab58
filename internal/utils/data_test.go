package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_JSON(t *testing.T) {
	var v struct {
		Vencimento Data  `json:"vencimento"`
		Pagamento  *Data `json:"pagamento"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"vencimento":"2026-03-10","pagamento":null}`), &v))
	assert.Equal(t, 2026, v.Vencimento.Year())
	assert.Equal(t, time.March, v.Vencimento.Month())
	assert.Nil(t, v.Pagamento.Ptr())

	b, err := json.Marshal(v.Vencimento)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10"`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`{"vencimento":"2026-03-10T15:04:05Z"}`), &v))
	assert.Equal(t, 0, v.Vencimento.Hour())

	assert.Error(t, json.Unmarshal([]byte(`{"vencimento":"10/03/2026"}`), &v))
}
