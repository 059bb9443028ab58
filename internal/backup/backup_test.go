package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/KromaEnergia/api-erp/internal/cliente"
	"github.com/KromaEnergia/api-erp/internal/comentario"
	"github.com/KromaEnergia/api-erp/internal/esquema"
	"github.com/KromaEnergia/api-erp/internal/usuario"
	"github.com/KromaEnergia/api-erp/internal/utils/testutil"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var agora = time.Date(2026, 7, 1, 3, 0, 0, 0, time.UTC)

func origem(t *testing.T) *gorm.DB {
	t.Helper()
	database := testutil.NewDB(t)
	require.NoError(t, esquema.Migrar(database))
	require.NoError(t, database.Create(&usuario.Usuario{Nome: "Admin", Email: "admin@erp.local", Senha: "hash", IsAdmin: true, Ativo: true}).Error)
	require.NoError(t, database.Create(&[]cliente.Cliente{
		{Nome: "Ana", TipoPessoa: cliente.PessoaFisica, Ativo: true},
		{Nome: "Bruno", TipoPessoa: cliente.PessoaFisica, Ativo: true},
	}).Error)
	c := comentario.Comentario{Texto: "apagado", Referencia: comentario.RefOrdemServico, ReferenciaID: 1}
	require.NoError(t, database.Create(&c).Error)
	require.NoError(t, database.Delete(&c).Error)
	return database
}

func TestGerar(t *testing.T) {
	database := origem(t)

	doc, err := Gerar(context.Background(), database, agora)
	require.NoError(t, err)
	cont := doc.Contagem()
	assert.Len(t, cont, len(esquema.Entidades()))
	assert.Equal(t, 2, cont["clientes"])
	assert.Equal(t, 1, cont["usuarios"])
	assert.Equal(t, 1, cont["comentarios"])
	assert.Equal(t, 0, cont["ordens_servico"])

	var buf bytes.Buffer
	require.NoError(t, Escrever(&buf, doc))
	var lido struct {
		GeradoEm time.Time                   `json:"geradoEm"`
		Tabelas  map[string][]map[string]any `json:"tabelas"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &lido))
	assert.True(t, agora.Equal(lido.GeradoEm))
	assert.Equal(t, "hash", lido.Tabelas["usuarios"][0]["senha"])
	assert.Equal(t, "Ana", lido.Tabelas["clientes"][0]["nome"])
	assert.NotNil(t, lido.Tabelas["ordens_servico"])
}

func TestChave(t *testing.T) {
	k := Chave(agora)
	assert.Regexp(t, regexp.MustCompile(`^backups/20260701T030000Z-[0-9a-f-]{36}\.json$`), k)
	assert.NotEqual(t, k, Chave(agora))
}

type s3Fake struct {
	entrada *s3.PutObjectInput
	corpo   []byte
}

func (f *s3Fake) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.entrada = in
	f.corpo, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Destino(t *testing.T) {
	fake := &s3Fake{}
	d := &S3Destino{client: fake, bucket: "erp-backups"}

	require.NoError(t, d.Enviar(context.Background(), "backups/x.json", []byte(`{}`)))
	assert.Equal(t, "erp-backups", *fake.entrada.Bucket)
	assert.Equal(t, "backups/x.json", *fake.entrada.Key)
	assert.Equal(t, "application/json", *fake.entrada.ContentType)
	assert.Equal(t, `{}`, string(fake.corpo))
}

func TestSincronizar(t *testing.T) {
	ctx := context.Background()
	src := origem(t)
	dst := testutil.NewDB(t)

	res, err := Sincronizar(ctx, src, dst, nil)
	require.NoError(t, err)
	require.Len(t, res, len(esquema.Entidades()))
	linhas := map[string]int{}
	for _, r := range res {
		linhas[r.Tabela] = r.Linhas
	}
	assert.Equal(t, 2, linhas["clientes"])
	assert.Equal(t, 1, linhas["comentarios"])

	require.NoError(t, src.Model(&cliente.Cliente{}).Where("nome = ?", "Ana").Update("nome", "Ana Maria").Error)
	_, err = Sincronizar(ctx, src, dst, nil)
	require.NoError(t, err)

	var clientes []cliente.Cliente
	require.NoError(t, dst.Order("id").Find(&clientes).Error)
	require.Len(t, clientes, 2)
	assert.Equal(t, "Ana Maria", clientes[0].Nome)

	var u usuario.Usuario
	require.NoError(t, dst.First(&u).Error)
	assert.Equal(t, "hash", u.Senha)

	var apagados int64
	require.NoError(t, dst.Unscoped().Model(&comentario.Comentario{}).Where("deleted_at IS NOT NULL").Count(&apagados).Error)
	assert.Equal(t, int64(1), apagados)
}
