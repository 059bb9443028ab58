package configuracao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache guarda a configuração entre requisições. Salvar invalida.
type Cache interface {
	Get(ctx context.Context) (*ConfiguracaoEmpresa, bool)
	Set(ctx context.Context, c *ConfiguracaoEmpresa)
	Invalidate(ctx context.Context)
}

// MemoryCache é o backend padrão, válido para uma instância só
type MemoryCache struct {
	mu    sync.RWMutex
	valor *ConfiguracaoEmpresa
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (m *MemoryCache) Get(context.Context) (*ConfiguracaoEmpresa, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.valor == nil {
		return nil, false
	}
	c := *m.valor
	return &c, true
}

func (m *MemoryCache) Set(_ context.Context, c *ConfiguracaoEmpresa) {
	copia := *c
	m.mu.Lock()
	m.valor = &copia
	m.mu.Unlock()
}

func (m *MemoryCache) Invalidate(context.Context) {
	m.mu.Lock()
	m.valor = nil
	m.mu.Unlock()
}

const chaveRedis = "erp:configuracao:empresa"

// RedisCache compartilha a configuração entre instâncias. Falhas do redis
// viram cache miss e são apenas registradas.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func (r *RedisCache) Get(ctx context.Context) (*ConfiguracaoEmpresa, bool) {
	b, err := r.client.Get(ctx, chaveRedis).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("falha ao ler configuração do redis", zap.Error(err))
		}
		return nil, false
	}
	var c ConfiguracaoEmpresa
	if err := json.Unmarshal(b, &c); err != nil {
		r.log.Warn("configuração inválida no redis", zap.Error(err))
		return nil, false
	}
	return &c, true
}

func (r *RedisCache) Set(ctx context.Context, c *ConfiguracaoEmpresa) {
	b, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, chaveRedis, b, r.ttl).Err(); err != nil {
		r.log.Warn("falha ao gravar configuração no redis", zap.Error(err))
	}
}

func (r *RedisCache) Invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, chaveRedis).Err(); err != nil {
		r.log.Warn("falha ao invalidar configuração no redis", zap.Error(err))
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NovoCache usa redis quando ERP_REDIS_ADDR está definido e memória caso contrário
func NovoCache(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (Cache, error) {
	if cfg.Addr == "" {
		return NewMemoryCache(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return NewRedisCache(client, ttl, log), nil
}
