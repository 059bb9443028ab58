package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KromaEnergia/api-erp/internal/config"
	applog "github.com/KromaEnergia/api-erp/internal/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDataBase abre a conexão conforme o driver configurado:
// sqlite para uso local, postgres para produção.
func ConnectDataBase(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         applog.NewGormLogger(log, cfg.LogLevel, cfg.SlowQuery),
		TranslateError: true,
	}

	switch cfg.Driver {
	case "postgres":
		username, password, err := retrieveCredentials(cfg)
		if err != nil {
			return nil, err
		}
		database, err := gorm.Open(postgres.Open(cfg.PostgresDSN(username, password)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("erro ao conectar no postgres: %w", err)
		}
		return database, nil
	case "sqlite", "":
		return OpenSQLite(cfg.SQLitePath, gcfg)
	default:
		return nil, fmt.Errorf("driver de banco desconhecido: %s", cfg.Driver)
	}
}

// OpenSQLite abre (ou cria) o arquivo SQLite com WAL e chaves estrangeiras ativas
func OpenSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório do banco: %w", err)
		}
	}
	if gcfg == nil {
		gcfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Error), TranslateError: true}
	}
	database, err := gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=1"), gcfg)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir sqlite: %w", err)
	}
	return database, nil
}

// OpenMemory abre um SQLite em memória com uma única conexão. Usado em testes
// e como área temporária.
func OpenMemory() (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return database, nil
}

// Close fecha a conexão subjacente
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
