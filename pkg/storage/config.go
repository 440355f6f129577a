package storage

import "fmt"

// Config holds Azure Blob Storage connection parameters.
type Config struct {
	ContainerName    string `toml:"container_name"    env:"CONTAINER_NAME"`
	ConnectionString string `toml:"connection_string" env:"CONNECTION_STRING"`
}

// Finalize fills defaults and validates.
func (c *Config) Finalize() error {
	if c.ContainerName == "" {
		c.ContainerName = "datasets"
	}
	if c.ConnectionString == "" {
		return fmt.Errorf("connection_string required")
	}
	return nil
}

// Merge overwrites fields that are set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
}
