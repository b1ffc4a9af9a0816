package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the service configuration, read from environment
// variables with sensible defaults.
type AppConfig struct {
	Port string

	// RefreshInterval controls how often all city bundles are
	// refetched.
	RefreshInterval time.Duration

	// HTTPTimeout applies to every outbound upstream request.
	HTTPTimeout time.Duration

	// DatabasePath is the sqlite file persisting user-added cities.
	DatabasePath string
}

// Load reads configuration from the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DatabasePath = getenvDefault("DB_PATH", "weather.db")

	interval, err := time.ParseDuration(getenvDefault("REFRESH_INTERVAL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
