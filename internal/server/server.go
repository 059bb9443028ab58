// Package server monta as dependências da API e controla o ciclo de vida do
// servidor HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-erp/internal/auth"
	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/KromaEnergia/api-erp/internal/configuracao"
	"github.com/KromaEnergia/api-erp/internal/consulta"
	"github.com/KromaEnergia/api-erp/internal/documento"
	"github.com/KromaEnergia/api-erp/internal/esquema"
	"github.com/KromaEnergia/api-erp/internal/notificacao"
	"github.com/KromaEnergia/api-erp/internal/solar"
	dbpkg "github.com/KromaEnergia/api-erp/internal/utils/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tempoDesligamento = 15 * time.Second

// App é a API pronta para servir
type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Handler  http.Handler
	cache    configuracao.Cache
	renderer *documento.ChromedpRenderer
}

// Preparar conecta o banco, aplica as migrações, semeia o catálogo solar e
// monta o roteador.
func Preparar(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	ephemeral, err := auth.Init(cfg.Auth, cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	if ephemeral {
		log.Warn("chave RSA efêmera gerada; tokens não sobrevivem a reinício")
	}

	database, err := dbpkg.ConnectDataBase(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := esquema.Migrar(database); err != nil {
		_ = dbpkg.Close(database)
		return nil, err
	}
	paineis, inversores, err := solar.SemearCatalogo(database)
	if err != nil {
		_ = dbpkg.Close(database)
		return nil, fmt.Errorf("semear catálogo solar: %w", err)
	}
	if paineis+inversores > 0 {
		log.Info("catálogo solar semeado", zap.Int("paineis", paineis), zap.Int("inversores", inversores))
	}

	cache, err := configuracao.NovoCache(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("redis indisponível, usando cache em memória", zap.Error(err))
		cache = configuracao.NewMemoryCache()
	}

	app := &App{
		Cfg:      cfg,
		Log:      log,
		DB:       database,
		cache:    cache,
		renderer: documento.NewChromedpRenderer(cfg.PDF, log),
	}
	app.Handler, err = NewRouter(Dependencias{
		DB:           database,
		Log:          log,
		HTTP:         cfg.HTTP,
		Configuracao: configuracao.NewServico(database, cache),
		Notificador:  notificacao.NewWebhook(cfg.Webhook, log),
		Consultor:    consulta.NewCliente(cfg.Consulta),
		Renderer:     app.renderer,
	})
	if err != nil {
		app.Fechar()
		return nil, err
	}
	return app, nil
}

// Executar atende requisições até o contexto ser cancelado e então desliga
// o servidor aguardando as requisições em andamento.
func (a *App) Executar(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.Cfg.HTTP.Port,
		Handler:      a.Handler,
		ReadTimeout:  a.Cfg.HTTP.ReadTimeout,
		WriteTimeout: a.Cfg.HTTP.WriteTimeout,
	}

	erros := make(chan error, 1)
	go func() {
		a.Log.Info("servidor iniciado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			erros <- err
		}
		close(erros)
	}()

	select {
	case err := <-erros:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("desligando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), tempoDesligamento)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("desligamento forçado: %w", err)
	}
	return nil
}

// Fechar libera o navegador, o cache e o banco
func (a *App) Fechar() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if c, ok := a.cache.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			a.Log.Warn("erro ao fechar cache", zap.Error(err))
		}
	}
	if err := dbpkg.Close(a.DB); err != nil {
		a.Log.Warn("erro ao fechar banco", zap.Error(err))
	}
}
