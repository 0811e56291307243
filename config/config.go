package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - backend.go: Content backend (REST API) configuration
//   - redis.go: Session storage configuration
//   - http.go: HTTP server configuration
//   - content.go: Public site and rich content configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, verbose logs).
	// Set DEV=true, APP_ENV=development or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend is the REST API that owns all site content.
	Backend BackendConfig `envPrefix:"API_"`

	// Session storage
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Session SessionConfig `envPrefix:"SESSION_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Public site configuration
	Content ContentConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Session.Sanitize()
	c.Content.Sanitize()

	c.detectDevMode()
}

// Validate reports configuration that the server cannot start with.
func (c *AppConfig) Validate() error {
	return c.Backend.Validate()
}

// detectDevMode checks DEV, APP_ENV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
func (c *AppConfig) detectDevMode() {
	if c.IsDev {
		return
	}
	for _, key := range []string{"APP_ENV", "NODE_ENV"} {
		v := strings.ToLower(os.Getenv(key))
		if v == "development" || v == "dev" {
			c.IsDev = true
			return
		}
	}
}
