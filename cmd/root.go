package main

import (
	"fmt"
	"os"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/KromaEnergia/api-erp/internal/esquema"
	"github.com/KromaEnergia/api-erp/internal/logger"
	"github.com/KromaEnergia/api-erp/internal/utils/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "erp",
	Short: "ERP de serviços e energia solar",
	Long: `API e ferramentas do ERP: clientes, fornecedores, produtos, ordens de serviço,
propostas, projetos solares, precificação e financeiro.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(cfg.Log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// abrirBanco conecta no banco configurado e aplica as migrações
func abrirBanco() (*gorm.DB, error) {
	database, err := db.ConnectDataBase(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := esquema.Migrar(database); err != nil {
		_ = db.Close(database)
		return nil, err
	}
	return database, nil
}
