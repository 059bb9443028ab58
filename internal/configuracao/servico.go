package configuracao

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"gorm.io/gorm"
)

var ErrImagemInvalida = errors.New("arquivo de logo deve ser uma imagem PNG, JPEG, GIF ou WEBP")

var tiposImagem = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Servico lê a configuração pelo cache e grava no banco
type Servico struct {
	DB    *gorm.DB
	Cache Cache
}

func NewServico(db *gorm.DB, cache Cache) *Servico {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Servico{DB: db, Cache: cache}
}

// Obter devolve a configuração, criando a linha padrão se ainda não existir
func (s *Servico) Obter(ctx context.Context) (*ConfiguracaoEmpresa, error) {
	if c, ok := s.Cache.Get(ctx); ok {
		return c, nil
	}
	c := Padrao()
	if err := s.DB.WithContext(ctx).Where("id = ?", IDUnico).FirstOrCreate(&c).Error; err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, &c)
	return &c, nil
}

// Salvar grava a configuração inteira e invalida o cache
func (s *Servico) Salvar(ctx context.Context, c *ConfiguracaoEmpresa) error {
	c.ID = IDUnico
	if err := s.DB.WithContext(ctx).Save(c).Error; err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

// SalvarLogo troca só o logo
func (s *Servico) SalvarLogo(ctx context.Context, dataURL string) (*ConfiguracaoEmpresa, error) {
	c, err := s.Obter(ctx)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Model(&ConfiguracaoEmpresa{}).
		Where("id = ?", IDUnico).
		Update("logo_base64", dataURL).Error
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	c.LogoBase64 = dataURL
	return c, nil
}

// DiasValidade alimenta a validade padrão das propostas
func (s *Servico) DiasValidade(ctx context.Context) int {
	c, err := s.Obter(ctx)
	if err != nil || c.ValidadePropostaDias <= 0 {
		return ValidadePropostaPadrao
	}
	return c.ValidadePropostaDias
}

// DataURL converte o conteúdo de uma imagem em data URL base64
func DataURL(data []byte) (string, error) {
	tipo := http.DetectContentType(data)
	if i := strings.Index(tipo, ";"); i >= 0 {
		tipo = tipo[:i]
	}
	if !tiposImagem[tipo] {
		return "", ErrImagemInvalida
	}
	return "data:" + tipo + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// LogoDeArquivo lê uma imagem do disco e devolve o data URL
func LogoDeArquivo(caminho string) (string, error) {
	data, err := os.ReadFile(caminho)
	if err != nil {
		return "", fmt.Errorf("erro ao ler %s: %w", caminho, err)
	}
	return DataURL(data)
}
