package main

import (
	"github.com/KromaEnergia/api-erp/internal/solar"
	"github.com/KromaEnergia/api-erp/internal/utils/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrarCmd = &cobra.Command{
	Use:   "migrar",
	Short: "Cria ou atualiza as tabelas do banco configurado",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := abrirBanco()
		if err != nil {
			return err
		}
		defer db.Close(database)
		log.Info("migrações aplicadas", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carrega o catálogo inicial de painéis e inversores",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := abrirBanco()
		if err != nil {
			return err
		}
		defer db.Close(database)

		paineis, inversores, err := solar.SemearCatalogo(database)
		if err != nil {
			return err
		}
		if paineis+inversores == 0 {
			log.Info("catálogo já possui registros; nada a fazer")
			return nil
		}
		log.Info("catálogo semeado", zap.Int("paineis", paineis), zap.Int("inversores", inversores))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrarCmd, seedCmd)
}
