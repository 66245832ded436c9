package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	ImportWorkerCount int
	ImportQueueSize   int

	// Defaults used when the settings store has no row yet.
	DefaultSessionSize      int
	DefaultTimeLimitSeconds int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                    envOr("ADDR", ":8080"),
		DBPath:                  envOr("DB_PATH", "file:vocaflash.db"),
		LogLevel:                envOr("LOG_LEVEL", "INFO"),
		ImportWorkerCount:       envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:         envIntOr("IMPORT_QUEUE_SIZE", 32),
		DefaultSessionSize:      envIntOr("DEFAULT_SESSION_SIZE", 10),
		DefaultTimeLimitSeconds: envIntOr("DEFAULT_TIME_LIMIT_SECONDS", 15),
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ImportWorkerCount < 1 {
		return fmt.Errorf("IMPORT_WORKER_COUNT must be at least 1, got %d", c.ImportWorkerCount)
	}
	if c.ImportQueueSize < 1 {
		return fmt.Errorf("IMPORT_QUEUE_SIZE must be at least 1, got %d", c.ImportQueueSize)
	}
	if c.DefaultSessionSize < 1 {
		return fmt.Errorf("DEFAULT_SESSION_SIZE must be at least 1, got %d", c.DefaultSessionSize)
	}
	if c.DefaultTimeLimitSeconds < 1 {
		return fmt.Errorf("DEFAULT_TIME_LIMIT_SECONDS must be at least 1, got %d", c.DefaultTimeLimitSeconds)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
