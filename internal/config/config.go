// Package config loads the Iris service configuration from TOML files and
// IRIS_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/iris/pkg/database"
	"github.com/JaimeStill/iris/pkg/openapi"
	"github.com/JaimeStill/iris/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	// EnvPrefix prefixes every environment override; section prefixes
	// follow it, e.g. IRIS_DB_HOST or IRIS_API_CORS_ORIGINS.
	EnvPrefix  = "IRIS_"
	EnvIrisEnv = "IRIS_ENV"
)

// Config is the root configuration for the Iris service.
type Config struct {
	Server          ServerConfig    `toml:"server"           envPrefix:"SERVER_"`
	Logging         LoggingConfig   `toml:"logging"          envPrefix:"LOG_"`
	Database        database.Config `toml:"database"         envPrefix:"DB_"`
	Storage         storage.Config  `toml:"storage"          envPrefix:"STORAGE_"`
	API             APIConfig       `toml:"api"              envPrefix:"API_"`
	OpenAPI         openapi.Config  `toml:"openapi"          envPrefix:"OPENAPI_"`
	ShutdownTimeout string          `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	Version         string          `toml:"version"          env:"VERSION"`
}

// Env returns the IRIS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvIrisEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml when present, merges config.<IRIS_ENV>.toml over
// it, applies IRIS_* environment overrides, then fills defaults and
// validates every section.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites fields that are set in overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *Config) finalize() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("env: %w", err)
	}

	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"logging", c.Logging.Finalize},
		{"database", c.Database.Finalize},
		{"storage", c.Storage.Finalize},
		{"api", c.API.Finalize},
		{"openapi", c.OpenAPI.Finalize},
	}

	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvIrisEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
