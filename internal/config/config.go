// Package config carrega a configuração da aplicação a partir de .env, config.yaml e
// variáveis de ambiente com prefixo ERP_.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa toda a configuração da aplicação
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Log      LogConfig
	Redis    RedisConfig
	S3       S3Config
	PDF      PDFConfig
	Consulta ConsultaConfig
	Webhook  WebhookConfig
}

type AppConfig struct {
	Name string
	Env  string
}

// DatabaseConfig define qual banco usar. Driver "sqlite" (local) ou "postgres" (produção).
type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	DSN        string
	Host       string
	Port       int
	Name       string
	User       string
	Password   string
	SecretID   string
	SSLMode    string
	LogLevel   string
	SlowQuery  time.Duration
}

type HTTPConfig struct {
	Port             string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

type AuthConfig struct {
	RSAPrivatePath string
	KID            string
	Issuer         string
	Audience       string
	CookieSecure   bool
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type PDFConfig struct {
	Timeout   time.Duration
	RemoteURL string
	NoSandbox bool
}

type ConsultaConfig struct {
	CEPBaseURL  string
	CNPJBaseURL string
	Timeout     time.Duration
}

type WebhookConfig struct {
	URL string
}

// IsProduction indica se o ambiente é de produção
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// PostgresDSN monta o DSN do postgres quando não informado diretamente
func (d DatabaseConfig) PostgresDSN(user, password string) string {
	if d.DSN != "" {
		return d.DSN
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d", d.Host, user, password, d.Name, d.Port)
	if d.SSLMode != "" {
		dsn += " sslmode=" + d.SSLMode
	}
	return dsn
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "erp")
	v.SetDefault("app.env", "development")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite_path", "erp.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_query", 200*time.Millisecond)

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("http.cors_allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("auth.kid", "erp-1")
	v.SetDefault("auth.issuer", "erp")
	v.SetDefault("auth.audience", "erp-web")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("s3.region", "us-east-1")

	v.SetDefault("pdf.timeout", 30*time.Second)

	v.SetDefault("consulta.cep_base_url", "https://viacep.com.br/ws")
	v.SetDefault("consulta.cnpj_base_url", "https://brasilapi.com.br/api/cnpj/v1")
	v.SetDefault("consulta.timeout", 10*time.Second)
}

// Load carrega a configuração. Prioridade (maior para menor):
// variáveis ERP_*, config.yaml, padrões.
// O arquivo .env, se existir, é carregado no ambiente antes.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/erp")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler config.yaml: %w", err)
		}
	}

	v.SetEnvPrefix("ERP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("database.driver")),
			SQLitePath: v.GetString("database.sqlite_path"),
			DSN:        v.GetString("database.dsn"),
			Host:       v.GetString("database.host"),
			Port:       v.GetInt("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			SecretID:   v.GetString("database.secret_id"),
			SSLMode:    v.GetString("database.sslmode"),
			LogLevel:   v.GetString("database.log_level"),
			SlowQuery:  v.GetDuration("database.slow_query"),
		},
		HTTP: HTTPConfig{
			Port:             v.GetString("http.port"),
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Auth: AuthConfig{
			RSAPrivatePath: v.GetString("auth.rsa_private_path"),
			KID:            v.GetString("auth.kid"),
			Issuer:         v.GetString("auth.issuer"),
			Audience:       v.GetString("auth.audience"),
			CookieSecure:   v.GetBool("auth.cookie_secure"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		S3: S3Config{
			Endpoint:  v.GetString("s3.endpoint"),
			Region:    v.GetString("s3.region"),
			Bucket:    v.GetString("s3.bucket"),
			AccessKey: v.GetString("s3.access_key"),
			SecretKey: v.GetString("s3.secret_key"),
			UseSSL:    v.GetBool("s3.use_ssl"),
		},
		PDF: PDFConfig{
			Timeout:   v.GetDuration("pdf.timeout"),
			RemoteURL: v.GetString("pdf.remote_url"),
			NoSandbox: v.GetBool("pdf.no_sandbox"),
		},
		Consulta: ConsultaConfig{
			CEPBaseURL:  v.GetString("consulta.cep_base_url"),
			CNPJBaseURL: v.GetString("consulta.cnpj_base_url"),
			Timeout:     v.GetDuration("consulta.timeout"),
		},
		Webhook: WebhookConfig{
			URL: v.GetString("webhook.url"),
		},
	}
}
