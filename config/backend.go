package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBackendTimeout = 15 * time.Second
	maxBackendTimeout     = 2 * time.Minute
)

// BackendConfig describes the REST API that owns pages, news, gallery, messages and school info.
type BackendConfig struct {
	// BaseURL is the API root; resource paths such as /admin/pages are appended to it.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds every backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// UserAgent is sent on every backend request.
	UserAgent string `env:"USER_AGENT" envDefault:"schoolsite-ui"`

	// TokenPath is a JMESPath expression locating the credential in the login response.
	TokenPath string `env:"TOKEN_PATH" envDefault:"token || data.token || accessToken"`

	// ProfilePath is a JMESPath expression locating the admin profile in the login response.
	ProfilePath string `env:"PROFILE_PATH" envDefault:"admin || user || data.admin"`

	// MessagePath is a JMESPath expression locating a human-readable message in error responses.
	MessagePath string `env:"MESSAGE_PATH" envDefault:"message || error || errors[0].msg"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = defaultBackendTimeout
	}
	if b.Timeout > maxBackendTimeout {
		b.Timeout = maxBackendTimeout
	}
	b.UserAgent = strings.TrimSpace(b.UserAgent)
	b.TokenPath = strings.TrimSpace(b.TokenPath)
	b.ProfilePath = strings.TrimSpace(b.ProfilePath)
	b.MessagePath = strings.TrimSpace(b.MessagePath)
}

// Validate ensures the base URL is an absolute http(s) URL.
func (b *BackendConfig) Validate() error {
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", b.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API_BASE_URL %q: scheme must be http or https", b.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q: host is required", b.BaseURL)
	}
	if b.TokenPath == "" {
		return fmt.Errorf("API_TOKEN_PATH must not be empty")
	}
	return nil
}
