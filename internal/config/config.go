package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	Port        string
	CORSOrigins []string

	// Banco
	DBHost       string
	DBPort       int
	DBName       string
	DBUsername   string
	DBPassword   string
	DBSecretID   string
	DBSSLDisable bool

	// Autenticação
	AuthPrivateKeyPath string
	AuthKID            string
	AuthIssuer         string
	AuthAudience       string
	CookieSecure       bool
	AdminEmail         string
	AdminPassword      string

	// Provedor externo (OIDC)
	OIDCJWKSURL  string
	OIDCIssuer   string
	OIDCAudience string

	// Cache
	RedisAddr      string
	PainelCacheTTL time.Duration

	// Notificações
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
	WebhookURL   string

	// Arquivo de exportações
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3Bucket    string
	S3UseSSL    bool
}

// Load lê .env (se existir) e as variáveis de ambiente.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnvInt("DB_PORT", 5432),
		DBName:       getEnv("DB_NAME", "comissio"),
		DBUsername:   getEnv("DB_USERNAME", ""),
		DBPassword:   getEnv("DB_PASSWORD", ""),
		DBSecretID:   getEnv("DB_SECRET_ID", ""),
		DBSSLDisable: getEnvBool("DB_SSL_MODE_DISABLE", false),

		AuthPrivateKeyPath: getEnv("AUTH_RSA_PRIVATE_PATH", ""),
		AuthKID:            getEnv("AUTH_KID", "comissio-1"),
		AuthIssuer:         getEnv("AUTH_ISSUER", "comissio"),
		AuthAudience:       getEnv("AUTH_AUDIENCE", "comissio-backoffice"),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),

		OIDCJWKSURL:  getEnv("OIDC_JWKS_URL", ""),
		OIDCIssuer:   getEnv("OIDC_ISSUER", ""),
		OIDCAudience: getEnv("OIDC_AUDIENCE", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		PainelCacheTTL: getEnvDuration("PAINEL_CACHE_TTL", 5*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "comissio"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "parcelas"),
		WebhookURL:   getEnv("WEBHOOK_URL", ""),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Region:    getEnv("S3_REGION", ""),
		S3Bucket:    getEnv("S3_BUCKET", "comissio-exportacoes"),
		S3UseSSL:    getEnvBool("S3_USE_SSL", false),
	}
}

// Validate retorna um único erro com todos os problemas encontrados.
func (c *Config) Validate() error {
	var problemas []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problemas = append(problemas, fmt.Sprintf("PORT inválida '%s': deve ser numérica", c.Port))
	} else if port < 1 || port > 65535 {
		problemas = append(problemas, fmt.Sprintf("PORT %d fora do intervalo 1-65535", port))
	}

	if c.DBHost == "" || c.DBName == "" {
		problemas = append(problemas, "DB_HOST e DB_NAME são obrigatórios")
	}
	if (c.DBUsername == "" || c.DBPassword == "") && c.DBSecretID == "" {
		problemas = append(problemas, "informe DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	if c.AuthKID == "" || c.AuthIssuer == "" || c.AuthAudience == "" {
		problemas = append(problemas, "AUTH_KID, AUTH_ISSUER e AUTH_AUDIENCE são obrigatórios")
	}

	if c.OIDCJWKSURL != "" {
		if _, err := url.ParseRequestURI(c.OIDCJWKSURL); err != nil {
			problemas = append(problemas, fmt.Sprintf("OIDC_JWKS_URL inválida: %v", err))
		}
		if c.OIDCIssuer == "" || c.OIDCAudience == "" {
			problemas = append(problemas, "OIDC_ISSUER e OIDC_AUDIENCE são obrigatórios com OIDC_JWKS_URL")
		}
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problemas = append(problemas, fmt.Sprintf("AMQP_URL inválida: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problemas = append(problemas, fmt.Sprintf("AMQP_URL com esquema '%s': use amqp ou amqps", u.Scheme))
		}
		if c.AMQPExchange == "" || c.AMQPQueue == "" {
			problemas = append(problemas, "AMQP_EXCHANGE e AMQP_QUEUE são obrigatórios com AMQP_URL")
		}
	}

	if c.WebhookURL != "" {
		if _, err := url.ParseRequestURI(c.WebhookURL); err != nil {
			problemas = append(problemas, fmt.Sprintf("WEBHOOK_URL inválida: %v", err))
		}
	}

	if c.S3Endpoint != "" && (c.S3AccessKey == "" || c.S3SecretKey == "" || c.S3Bucket == "") {
		problemas = append(problemas, "S3_ACCESS_KEY, S3_SECRET_KEY e S3_BUCKET são obrigatórios com S3_ENDPOINT")
	}

	if c.PainelCacheTTL <= 0 {
		problemas = append(problemas, "PAINEL_CACHE_TTL deve ser positivo")
	}

	if len(problemas) > 0 {
		return fmt.Errorf("configuração inválida:\n  - %s", strings.Join(problemas, "\n  - "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
