package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/KromaEnergia/api-erp/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia a API HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.Preparar(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer app.Fechar()
		return app.Executar(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
