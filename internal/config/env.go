package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvAPIURL     = "SHELF_API_URL"
	EnvAPITimeout = "SHELF_API_TIMEOUT"
	EnvPageSize   = "SHELF_PAGE_SIZE"
	EnvDebounce   = "SHELF_DEBOUNCE"
	EnvLogLevel   = "SHELF_LOG_LEVEL"
)

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}
}

// ApplyEnv overrides cfg with any SHELF_* variables that are set
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.API.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvAPITimeout); ok && v != "" {
		cfg.API.Timeout = v
	}
	if v, ok := os.LookupEnv(EnvDebounce); ok && v != "" {
		cfg.Browse.Debounce = v
	}
	cfg.Browse.PageSize = getIntEnv(EnvPageSize, cfg.Browse.PageSize)
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
		slog.Warn("Ignoring non-integer environment value", "key", key, "value", value)
	}
	return fallback
}
