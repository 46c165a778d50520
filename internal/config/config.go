package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	// Persistence
	DatabaseURL string
	RedisURL    string

	// Sessions
	SessionSecret string

	// Events; empty disables the Kafka publisher and falls back to the
	// in-process pub/sub.
	KafkaBrokers []string
}

// LoadConfig reads .env (when present) and the process environment.
// DATABASE_URL is the only hard requirement.
func LoadConfig() (*Config, error) {
	// .env is a development convenience; missing file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "3000"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SessionSecret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return cfg, nil
}

// IsProduction toggles release mode and the cookie security attributes.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
