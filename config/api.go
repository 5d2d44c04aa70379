package config

import (
	"strings"
	"time"
)

const (
	// DefaultAPIBaseURL is the production content API every deployment talks to unless overridden.
	DefaultAPIBaseURL = "https://simbrella-api.laravel.cloud/api"

	defaultAPITimeout = 15 * time.Second
)

// APIConfig describes how to reach the remote content API.
type APIConfig struct {
	// BaseURL is the prefix every relative endpoint path is joined onto.
	BaseURL string `env:"API_BASE_URL" envDefault:"https://simbrella-api.laravel.cloud/api"`

	// Timeout bounds a single request, including reading the response body.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// UserAgent is sent on every outbound request.
	UserAgent string `env:"API_USER_AGENT" envDefault:"cms-console"`
}

// Sanitize trims the base URL and restores defaults for unusable values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
	c.UserAgent = strings.TrimSpace(c.UserAgent)
}
