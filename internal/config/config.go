package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port           string
	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	LogLevel       string
	RateLimit      int
	RateWindow     time.Duration
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDriver: getEnv("DB_DRIVER", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "choretrack.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttl, err := getDuration("TOKEN_TTL", 0)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	limit, err := getInt("RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit = limit

	window, err := getDuration("RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RateWindow = window

	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set when DB_DRIVER is postgres")
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
