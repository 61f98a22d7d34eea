// Package config holds the application configuration, loaded from
// UPKEEP_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/rezkam/upkeep/internal/env"
)

// Config holds the application configuration.
type Config struct {
	// Server Configuration
	HTTPPort string `env:"UPKEEP_HTTP_PORT" default:"8080"`
	Env      string `env:"UPKEEP_ENV" default:"dev"` // dev, prod

	// Storage Configuration
	StorageType string `env:"UPKEEP_STORAGE_TYPE" default:"sqlite"` // memory, fs, gcs, sqlite, postgres
	FSDir       string `env:"UPKEEP_FS_DIR" default:"./upkeep-data"`
	GCSBucket   string `env:"UPKEEP_GCS_BUCKET"`
	SQLitePath  string `env:"UPKEEP_SQLITE_PATH" default:"./upkeep.db"`
	PostgresURL string `env:"UPKEEP_POSTGRES_URL"`

	// Scheduling Configuration
	DueSoonWindowDays int `env:"UPKEEP_DUE_SOON_WINDOW_DAYS" default:"30"`

	// HTTP Server Timeouts
	ReadTimeout     time.Duration `env:"UPKEEP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `env:"UPKEEP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"UPKEEP_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `env:"UPKEEP_SHUTDOWN_TIMEOUT" default:"15s"`

	// Observability Configuration
	OTelEnabled bool `env:"UPKEEP_OTEL_ENABLED" default:"false"`
}

// Load parses environment variables into a Config struct.
// It enforces the UPKEEP_ prefix and validates storage dependencies.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageType {
	case "memory":
		// No dependencies.
	case "fs":
		if c.FSDir == "" {
			return fmt.Errorf("UPKEEP_FS_DIR is required when UPKEEP_STORAGE_TYPE is 'fs'")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("UPKEEP_GCS_BUCKET is required when UPKEEP_STORAGE_TYPE is 'gcs'")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("UPKEEP_SQLITE_PATH is required when UPKEEP_STORAGE_TYPE is 'sqlite'")
		}
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("UPKEEP_POSTGRES_URL is required when UPKEEP_STORAGE_TYPE is 'postgres'")
		}
	default:
		return fmt.Errorf("unknown UPKEEP_STORAGE_TYPE: %s", c.StorageType)
	}

	if c.DueSoonWindowDays <= 0 {
		return fmt.Errorf("UPKEEP_DUE_SOON_WINDOW_DAYS must be positive, got %d", c.DueSoonWindowDays)
	}

	return nil
}
