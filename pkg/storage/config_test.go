package storage_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/iris/pkg/storage"
)

func TestFinalize(t *testing.T) {
	tests := []struct {
		name          string
		cfg           storage.Config
		wantContainer string
		wantErr       string
	}{
		{
			name:          "default container",
			cfg:           storage.Config{ConnectionString: "conn"},
			wantContainer: "datasets",
		},
		{
			name:          "explicit container kept",
			cfg:           storage.Config{ContainerName: "iris-uploads", ConnectionString: "conn"},
			wantContainer: "iris-uploads",
		},
		{
			name:    "missing connection string",
			cfg:     storage.Config{ContainerName: "datasets"},
			wantErr: "connection_string required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Finalize() = %v, want error containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Finalize() error: %v", err)
			}
			if tt.cfg.ContainerName != tt.wantContainer {
				t.Errorf("container_name = %s, want %s", tt.cfg.ContainerName, tt.wantContainer)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := storage.Config{
		ContainerName:    "datasets",
		ConnectionString: "base-conn",
	}

	base.Merge(&storage.Config{ConnectionString: "overlay-conn"})

	if base.ContainerName != "datasets" {
		t.Errorf("container_name should remain datasets, got %s", base.ContainerName)
	}
	if base.ConnectionString != "overlay-conn" {
		t.Errorf("connection_string: got %s, want overlay-conn", base.ConnectionString)
	}
}
