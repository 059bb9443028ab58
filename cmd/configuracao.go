package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/KromaEnergia/api-erp/internal/configuracao"
	"github.com/KromaEnergia/api-erp/internal/usuario"
	"github.com/KromaEnergia/api-erp/internal/utils"
	"github.com/KromaEnergia/api-erp/internal/utils/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logoCmd = &cobra.Command{
	Use:   "logo <arquivo>",
	Short: "Grava a logo da empresa usada nos documentos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataURL, err := configuracao.LogoDeArquivo(args[0])
		if err != nil {
			return err
		}
		database, err := abrirBanco()
		if err != nil {
			return err
		}
		defer db.Close(database)

		// invalida também o redis compartilhado com a API
		cache, err := configuracao.NovoCache(cmd.Context(), cfg.Redis, log)
		if err != nil {
			return err
		}
		if c, ok := cache.(interface{ Close() error }); ok {
			defer c.Close()
		}
		svc := configuracao.NewServico(database, cache)
		if _, err := svc.SalvarLogo(cmd.Context(), dataURL); err != nil {
			return err
		}
		log.Info("logo atualizada", zap.String("arquivo", args[0]), zap.Int("bytes", len(dataURL)))
		return nil
	},
}

var adminNome, adminEmail, adminSenha string

var usuarioAdminCmd = &cobra.Command{
	Use:   "usuario-admin",
	Short: "Cria ou reativa um usuário administrador",
	RunE: func(cmd *cobra.Command, args []string) error {
		adminEmail = strings.TrimSpace(adminEmail)
		if adminEmail == "" {
			return errors.New("informe --email")
		}
		if adminSenha == "" {
			adminSenha = os.Getenv("ERP_ADMIN_SENHA")
		}
		if len(adminSenha) < 8 {
			return errors.New("a senha deve ter ao menos 8 caracteres (--senha ou ERP_ADMIN_SENHA)")
		}
		hash, err := utils.HashSenha(adminSenha)
		if err != nil {
			return err
		}

		database, err := abrirBanco()
		if err != nil {
			return err
		}
		defer db.Close(database)

		u, criado, err := usuario.EnsureAdmin(database, adminNome, adminEmail, hash)
		if err != nil {
			return fmt.Errorf("erro ao gravar administrador: %w", err)
		}
		acao := "atualizado"
		if criado {
			acao = "criado"
		}
		log.Info("administrador "+acao, zap.Uint("id", u.ID), zap.String("email", u.Email))
		return nil
	},
}

func init() {
	usuarioAdminCmd.Flags().StringVar(&adminNome, "nome", "Administrador", "nome do usuário")
	usuarioAdminCmd.Flags().StringVar(&adminEmail, "email", "", "e-mail de login")
	usuarioAdminCmd.Flags().StringVar(&adminSenha, "senha", "", "senha inicial")
	rootCmd.AddCommand(logoCmd, usuarioAdminCmd)
}
