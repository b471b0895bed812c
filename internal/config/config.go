package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DBDriver string
	DBPath   string
	APIPort  string

	LogLevel  slog.Level
	LogFormat string

	// SyncBaseURL is empty when sync is disabled.
	SyncBaseURL     string
	SyncAPIKey      string
	SyncHTTPTimeout time.Duration
	SyncTxTimeout   time.Duration
	// SyncInterval is zero when the periodic runner is disabled.
	SyncInterval time.Duration

	SearchDefaultLimit int
	SearchMaxLimit     int
}

// SyncEnabled reports whether a sync remote is configured.
func (c *Config) SyncEnabled() bool {
	return c.SyncBaseURL != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates every value.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load() // Try current directory

	// Walk up to find the project root's .env
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBPath:      getEnv("DB_PATH", "./data/novelcore.db"),
		APIPort:     getEnv("API_PORT", "9000"),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		SyncBaseURL: strings.TrimRight(getEnv("SYNC_BASE_URL", ""), "/"),
		SyncAPIKey:  getEnv("SYNC_API_KEY", ""),
	}

	switch cfg.DBDriver {
	case "sqlite", "sqlite3":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or sqlite3, got %q", cfg.DBDriver)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.SyncBaseURL != "" {
		u, err := url.Parse(cfg.SyncBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("SYNC_BASE_URL must be an absolute http(s) URL, got %q", cfg.SyncBaseURL)
		}
	}

	if cfg.SyncHTTPTimeout, err = getDuration("SYNC_HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SyncTxTimeout, err = getDuration("SYNC_TX_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = getDuration("SYNC_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.SyncHTTPTimeout <= 0 || cfg.SyncTxTimeout <= 0 {
		return nil, fmt.Errorf("SYNC_HTTP_TIMEOUT and SYNC_TX_TIMEOUT must be greater than 0")
	}
	if cfg.SyncInterval < 0 {
		return nil, fmt.Errorf("SYNC_INTERVAL must not be negative")
	}

	if cfg.SearchDefaultLimit, err = getInt("SEARCH_DEFAULT_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.SearchMaxLimit, err = getInt("SEARCH_MAX_LIMIT", 500); err != nil {
		return nil, err
	}
	if cfg.SearchDefaultLimit <= 0 || cfg.SearchMaxLimit <= 0 {
		return nil, fmt.Errorf("SEARCH_DEFAULT_LIMIT and SEARCH_MAX_LIMIT must be greater than 0")
	}
	if cfg.SearchDefaultLimit > cfg.SearchMaxLimit {
		return nil, fmt.Errorf("SEARCH_DEFAULT_LIMIT (%d) must not exceed SEARCH_MAX_LIMIT (%d)", cfg.SearchDefaultLimit, cfg.SearchMaxLimit)
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt parses an integer environment variable.
func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// getDuration parses a duration environment variable such as "30s". A bare
// "0" is accepted.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}
