package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials usa, nesta ordem: DB_USERNAME/DB_PASSWORD, usuário e senha da
// configuração, e por último o segredo do AWS Secrets Manager.
func retrieveCredentials(cfg config.DatabaseConfig) (string, string, error) {
	secretUsername := os.Getenv("DB_USERNAME")
	secretPassword := os.Getenv("DB_PASSWORD")
	if secretUsername != "" && secretPassword != "" {
		return secretUsername, secretPassword, nil
	}
	if cfg.DSN != "" || cfg.SecretID == "" {
		return cfg.User, cfg.Password, nil
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}
	secrets := secretsmanager.NewFromConfig(awsCfg)

	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("erro ao ler segredo do banco: %w", err)
	}
	return parseSecret(aws.ToString(result.SecretString))
}

func parseSecret(raw string) (string, string, error) {
	var secret Credentials
	if err := json.Unmarshal([]byte(raw), &secret); err != nil {
		return "", "", fmt.Errorf("segredo do banco inválido: %w", err)
	}
	return secret.Username, secret.Password, nil
}
