package middleware

import "strings"

// CORSConfig holds the CORS policy applied by the CORS middleware.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"           env:"ENABLED"`
	Origins          []string `toml:"origins"           env:"ORIGINS"`
	AllowedMethods   []string `toml:"allowed_methods"   env:"ALLOWED_METHODS"`
	AllowedHeaders   []string `toml:"allowed_headers"   env:"ALLOWED_HEADERS"`
	AllowCredentials bool     `toml:"allow_credentials" env:"ALLOW_CREDENTIALS"`
	MaxAge           int      `toml:"max_age"           env:"MAX_AGE"`
}

// Finalize trims list entries and fills defaults.
func (c *CORSConfig) Finalize() error {
	c.Origins = trimList(c.Origins)
	c.AllowedMethods = trimList(c.AllowedMethods)
	c.AllowedHeaders = trimList(c.AllowedHeaders)

	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
	return nil
}

// Merge applies overlay. Booleans always apply; lists and MaxAge apply when set.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	if overlay.Origins != nil {
		c.Origins = overlay.Origins
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func trimList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
