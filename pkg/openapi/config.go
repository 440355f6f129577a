package openapi

// Config holds the document metadata published in the generated spec.
type Config struct {
	Title       string `toml:"title"       env:"TITLE"`
	Description string `toml:"description" env:"DESCRIPTION"`
}

// Finalize fills defaults.
func (c *Config) Finalize() error {
	if c.Title == "" {
		c.Title = "Iris API"
	}
	if c.Description == "" {
		c.Description = "Iris flower sample store for k-nearest-neighbor classification exercises."
	}
	return nil
}

// Merge overwrites fields that are set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}
