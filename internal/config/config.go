package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL string
	DBPath     string
	LogLevel   string
}

// Load loads configuration from environment variables, falling back to a
// per-user default database location.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL: getEnvOrDefault("RECIPERADAR_API_URL", "http://localhost:8000"),
		DBPath:     os.Getenv("RECIPERADAR_DB"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.DBPath == "" {
		path, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	return cfg, nil
}

func defaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, "reciperadar", "reciperadar.db"), nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
