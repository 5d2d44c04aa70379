package config

import (
	"strings"
	"time"
)

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// SuperRole is the role name that short-circuits every permission check.
	SuperRole string `env:"AUTH_SUPER_ROLE" envDefault:"super-admin"`

	// SessionTTL is used when the login exchange reports no usable expiry.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`

	// RememberTTL is used instead of SessionTTL when the user asked to be remembered
	// and the exchange reports no usable expiry.
	RememberTTL time.Duration `env:"AUTH_REMEMBER_TTL" envDefault:"720h"`

	// LoginPath is where signed-out users are sent.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/login"`

	// HomePath is where signed-in users are sent when visiting auth-only pages.
	HomePath string `env:"AUTH_HOME_PATH" envDefault:"/dashboard"`

	// SweepInterval controls how often expired sessions are purged from the in-memory
	// store. Redis expires sessions on its own and ignores it.
	SweepInterval time.Duration `env:"AUTH_SESSION_SWEEP_INTERVAL" envDefault:"5m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.SuperRole = strings.TrimSpace(a.SuperRole)
	if a.SuperRole == "" {
		a.SuperRole = "super-admin"
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.RememberTTL < a.SessionTTL {
		a.RememberTTL = a.SessionTTL
	}
	if a.SweepInterval <= 0 {
		a.SweepInterval = 5 * time.Minute
	}
	a.LoginPath = normalizePath(a.LoginPath, "/login")
	a.HomePath = normalizePath(a.HomePath, "/dashboard")
}

func normalizePath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") {
		return fallback
	}
	return p
}
