package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/stockfy/platform/pkg/database"
)

// Config holds runtime configuration for the platform binaries
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string

	DB database.Config

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string

	JWTSecret            string
	SKUPrefix            string
	BillingWebhookSecret string
}

// Load reads configuration from the environment, honoring a local .env file
func Load() *Config {
	// Missing .env is fine, real deployments inject env vars directly
	_ = godotenv.Load()

	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "stockfy-api"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "stockfy"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:         splitList(getEnv("KAFKA_BROKERS", "")),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		SKUPrefix:            getEnv("SKU_PREFIX", "STK"),
		BillingWebhookSecret: getEnv("BILLING_WEBHOOK_SECRET", ""),
	}
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
