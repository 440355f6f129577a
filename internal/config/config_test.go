package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/iris/internal/config"
)

const baseConfig = `
version = "0.2.0"

[server]
port = 8080

[database]
host = "localhost"
name = "iris"
user = "iris"
password = "iris"

[storage]
connection_string = "UseDevelopmentStorage=true"

[api.pagination]
default_page_size = 25
max_page_size = 50
`

const overlayConfig = `
[server]
port = 9090

[logging]
format = "json"

[database]
host = "db.staging"
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func setup(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeConfig(t, dir, name, content)
	}
	t.Chdir(dir)
}

func TestLoad(t *testing.T) {
	setup(t, map[string]string{config.BaseConfigFile: baseConfig})

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"version", cfg.Version, "0.2.0"},
		{"shutdown timeout default", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
		{"server addr", cfg.Server.Addr(), "0.0.0.0:8080"},
		{"log level default", cfg.Logging.Level, "info"},
		{"log format default", cfg.Logging.Format, "text"},
		{"db name", cfg.Database.Name, "iris"},
		{"db port default", cfg.Database.Port, 5432},
		{"storage container default", cfg.Storage.ContainerName, "datasets"},
		{"base path default", cfg.API.BasePath, "/api"},
		{"max upload default", cfg.API.MaxUploadSizeBytes(), int64(50 * 1024 * 1024)},
		{"default page size", cfg.API.Pagination.DefaultPageSize, 25},
		{"max page size", cfg.API.Pagination.MaxPageSize, 50},
		{"openapi title default", cfg.OpenAPI.Title, "Iris API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadOverlay(t *testing.T) {
	setup(t, map[string]string{
		config.BaseConfigFile: baseConfig,
		"config.staging.toml": overlayConfig,
	})
	t.Setenv(config.EnvIrisEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Env() != "staging" {
		t.Errorf("Env() = %s, want staging", cfg.Env())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.staging" {
		t.Errorf("db host = %s, want db.staging", cfg.Database.Host)
	}
	if cfg.Database.Name != "iris" {
		t.Errorf("db name = %s, want iris from base", cfg.Database.Name)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("log format = %s, want json", cfg.Logging.Format)
	}
}

func TestLoadMissingOverlayIgnored(t *testing.T) {
	setup(t, map[string]string{config.BaseConfigFile: baseConfig})
	t.Setenv(config.EnvIrisEnv, "production")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setup(t, map[string]string{config.BaseConfigFile: baseConfig})

	t.Setenv("IRIS_SERVER_PORT", "7070")
	t.Setenv("IRIS_LOG_LEVEL", "debug")
	t.Setenv("IRIS_DB_HOST", "db.env")
	t.Setenv("IRIS_DB_AUTO_MIGRATE", "true")
	t.Setenv("IRIS_STORAGE_CONTAINER_NAME", "iris-datasets")
	t.Setenv("IRIS_API_MAX_UPLOAD_SIZE", "10MB")
	t.Setenv("IRIS_API_CORS_ENABLED", "true")
	t.Setenv("IRIS_API_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	t.Setenv("IRIS_API_PAGINATION_MAX_PAGE_SIZE", "200")
	t.Setenv("IRIS_OPENAPI_TITLE", "Iris Lab")
	t.Setenv("IRIS_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("IRIS_VERSION", "1.0.0")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"server port", cfg.Server.Port, 7070},
		{"log level", cfg.Logging.Level, "debug"},
		{"db host", cfg.Database.Host, "db.env"},
		{"db auto migrate", cfg.Database.AutoMigrate, true},
		{"db name kept", cfg.Database.Name, "iris"},
		{"container", cfg.Storage.ContainerName, "iris-datasets"},
		{"max upload", cfg.API.MaxUploadSizeBytes(), int64(10 * 1024 * 1024)},
		{"cors enabled", cfg.API.CORS.Enabled, true},
		{"max page size", cfg.API.Pagination.MaxPageSize, 200},
		{"openapi title", cfg.OpenAPI.Title, "Iris Lab"},
		{"shutdown timeout", cfg.ShutdownTimeoutDuration(), 5 * time.Second},
		{"version", cfg.Version, "1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	wantOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if diff := cmp.Diff(wantOrigins, cfg.API.CORS.Origins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed toml",
			files:   map[string]string{config.BaseConfigFile: "[server\nport = 1"},
			wantErr: "parse config",
		},
		{
			name:    "missing database name",
			files:   map[string]string{config.BaseConfigFile: "[database]\nuser = \"iris\"\n[storage]\nconnection_string = \"x\"\n"},
			wantErr: "database: name required",
		},
		{
			name:    "missing storage connection",
			files:   map[string]string{config.BaseConfigFile: "[database]\nname = \"iris\"\nuser = \"iris\"\n"},
			wantErr: "storage:",
		},
		{
			name:    "non-numeric env port",
			files:   map[string]string{config.BaseConfigFile: baseConfig},
			env:     map[string]string{"IRIS_SERVER_PORT": "http"},
			wantErr: "env:",
		},
		{
			name:    "invalid log format",
			files:   map[string]string{config.BaseConfigFile: baseConfig},
			env:     map[string]string{"IRIS_LOG_FORMAT": "xml"},
			wantErr: "logging: invalid format",
		},
		{
			name:    "nested base path",
			files:   map[string]string{config.BaseConfigFile: baseConfig},
			env:     map[string]string{"IRIS_API_BASE_PATH": "/api/v1"},
			wantErr: "base_path",
		},
		{
			name:    "page size exceeds max",
			files:   map[string]string{config.BaseConfigFile: baseConfig},
			env:     map[string]string{"IRIS_API_PAGINATION_DEFAULT_PAGE_SIZE": "500"},
			wantErr: "pagination:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.files)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEnvDefault(t *testing.T) {
	t.Setenv(config.EnvIrisEnv, "")

	var cfg config.Config
	if got := cfg.Env(); got != "local" {
		t.Errorf("Env() = %s, want local", got)
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := config.LoggingConfig{Level: "WARN", Format: "JSON"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %s, want json", cfg.Format)
	}
	if cfg.SlogLevel().String() != "WARN" {
		t.Errorf("SlogLevel() = %s, want WARN", cfg.SlogLevel())
	}

	bad := config.LoggingConfig{Level: "loud"}
	if err := bad.Finalize(); err == nil {
		t.Error("Finalize() accepted an unknown level")
	}
}
