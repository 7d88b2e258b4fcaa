// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Catalog source modes.
const (
	CatalogSourceLocal  = "local"
	CatalogSourceLegacy = "legacy"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	// HTTP
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	// Database. Documents are always stored locally, so this is required
	// regardless of the catalog source.
	DatabaseURL string `env:"DATABASE_URL"`

	// CatalogSource selects where worksheet option lists come from:
	// "local" reads this server's database, "legacy" proxies the
	// historical DMS API.
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"local"`

	// Legacy DMS API (required in legacy mode and for catalog sync)
	LegacyBaseURL    string        `env:"LEGACY_BASE_URL"`
	LegacyAPIKey     string        `env:"LEGACY_API_KEY"`
	LegacyTimeout    time.Duration `env:"LEGACY_TIMEOUT" envDefault:"15s"`
	LegacyMaxRetries int           `env:"LEGACY_MAX_RETRIES" envDefault:"3"`

	// Worksheet sessions
	SessionStore string        `env:"SESSION_STORE" envDefault:"memory"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"4h"`

	// Redis (required when SESSION_STORE=redis)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// SelectorPageSize bounds catalog option lists
	SelectorPageSize int `env:"SELECTOR_PAGE_SIZE" envDefault:"1000"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.CatalogSource {
	case CatalogSourceLocal:
	case CatalogSourceLegacy:
		if c.LegacyBaseURL == "" {
			return fmt.Errorf("LEGACY_BASE_URL is required when CATALOG_SOURCE=legacy")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	return nil
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev" || c.AppEnv == "local"
}
