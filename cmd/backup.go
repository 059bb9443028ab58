package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/KromaEnergia/api-erp/internal/backup"
	"github.com/KromaEnergia/api-erp/internal/utils/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backupSaida string
	backupS3    bool
	destinoDSN  string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Exporta todas as tabelas em um documento JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := abrirBanco()
		if err != nil {
			return err
		}
		defer db.Close(database)

		agora := time.Now().UTC()
		doc, err := backup.Gerar(ctx, database, agora)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := backup.Escrever(&buf, doc); err != nil {
			return err
		}

		switch {
		case backupS3:
			destino, err := backup.NewS3Destino(ctx, cfg.S3)
			if err != nil {
				return err
			}
			chave := backup.Chave(agora)
			if err := destino.Enviar(ctx, chave, buf.Bytes()); err != nil {
				return err
			}
			log.Info("backup enviado", zap.String("bucket", cfg.S3.Bucket), zap.String("chave", chave))
		case backupSaida == "" || backupSaida == "-":
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		default:
			if err := os.WriteFile(backupSaida, buf.Bytes(), 0o600); err != nil {
				return fmt.Errorf("erro ao gravar backup: %w", err)
			}
			log.Info("backup gravado", zap.String("arquivo", backupSaida))
		}
		for tabela, n := range doc.Contagem() {
			log.Debug("tabela exportada", zap.String("tabela", tabela), zap.Int("linhas", n))
		}
		return nil
	},
}

var sincronizarCmd = &cobra.Command{
	Use:   "sincronizar",
	Short: "Copia o banco SQLite local para um postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		if destinoDSN == "" {
			return fmt.Errorf("informe --destino com o DSN do postgres")
		}
		origem, err := abrirBanco()
		if err != nil {
			return err
		}
		defer db.Close(origem)

		destinoCfg := cfg.Database
		destinoCfg.Driver = "postgres"
		destinoCfg.DSN = destinoDSN
		destino, err := db.ConnectDataBase(destinoCfg, log)
		if err != nil {
			return err
		}
		defer db.Close(destino)

		resultados, err := backup.Sincronizar(cmd.Context(), origem, destino, log)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range resultados {
			fmt.Fprintf(out, "%-28s %6d\n", r.Tabela, r.Linhas)
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupSaida, "saida", "", "arquivo de saída (padrão: stdout)")
	backupCmd.Flags().BoolVar(&backupS3, "s3", false, "envia o backup para o bucket configurado em ERP_S3_*")
	sincronizarCmd.Flags().StringVar(&destinoDSN, "destino", "", "DSN do postgres de destino")
	rootCmd.AddCommand(backupCmd, sincronizarCmd)
}
