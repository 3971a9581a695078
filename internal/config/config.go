package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	// PublicBaseURL — origin used to build portal public URLs ({origin}/p/{slug}).
	PublicBaseURL string

	JWTSecret   string
	JWTTTLHours int

	// NotifierURL — если задан, события заявок отправляются внешнему нотификатору
	// (POST /notify/submission), best-effort.
	NotifierURL string

	KafkaBrokers         []string
	KafkaTopicSubmission string

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}

	Blob struct {
		Endpoint      string
		AccessKey     string
		SecretKey     string
		Bucket        string
		UseSSL        bool
		PublicBaseURL string
		CDNBaseURL    string
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:              getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort:             firstEnv("APP_PORT", "HTTP_PORT", "8090"),
		AppEnv:               getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:        getEnv("PUBLIC_BASE_URL", "http://localhost:8090"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTLHours:          getEnvInt("JWT_TTL_HOURS", 24),
		NotifierURL:          getEnv("NOTIFIER_URL", ""),
		KafkaBrokers:         splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopicSubmission: getEnv("KAFKA_TOPIC_SUBMISSION", ""),
	}
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.Database = getEnv("DB_DATABASE", "cmms_service")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Blob.Endpoint = getEnv("BLOB_ENDPOINT", "")
	cfg.Blob.AccessKey = getEnv("BLOB_ACCESS_KEY", "")
	cfg.Blob.SecretKey = getEnv("BLOB_SECRET_KEY", "")
	cfg.Blob.Bucket = getEnv("BLOB_BUCKET", "cmms-uploads")
	cfg.Blob.UseSSL = getEnv("BLOB_USE_SSL", "true") == "true"
	cfg.Blob.PublicBaseURL = getEnv("BLOB_PUBLIC_BASE_URL", "")
	cfg.Blob.CDNBaseURL = getEnv("BLOB_CDN_BASE_URL", "")
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DB.Host == "" || c.DB.Database == "" {
		return errors.New("config: DB_HOST and DB_DATABASE are required")
	}
	if c.AppEnv == "production" && c.DB.Password == "" {
		return errors.New("config: in production DB_PASSWORD is required")
	}
	if c.AppEnv == "production" && c.JWTSecret == "dev-secret-change-me" {
		return errors.New("config: in production JWT_SECRET is required")
	}
	// Отсутствие токена хранилища при заданном endpoint — фатальная ошибка старта.
	if c.Blob.Endpoint != "" && (c.Blob.AccessKey == "" || c.Blob.SecretKey == "") {
		return errors.New("config: BLOB_ACCESS_KEY and BLOB_SECRET_KEY are required when BLOB_ENDPOINT is set")
	}
	return nil
}

// BlobEnabled reports whether the hosted blob provider is configured.
// Without it the upload gateway falls back to local disk storage.
func (c *Config) BlobEnabled() bool {
	return c.Blob.Endpoint != ""
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
