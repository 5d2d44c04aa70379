package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != DefaultAPIBaseURL {
		t.Fatalf("API.BaseURL = %q, want %q", cfg.API.BaseURL, DefaultAPIBaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("API.Timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.Auth.SuperRole != "super-admin" {
		t.Fatalf("Auth.SuperRole = %q, want super-admin", cfg.Auth.SuperRole)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.CLI.SessionFile == "" {
		t.Fatalf("expected CLI.SessionFile to be resolved")
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_SUPER_ROLE", "owner")
	t.Setenv("AUTH_SESSION_TTL", "2h")
	t.Setenv("AUTH_REMEMBER_TTL", "48h")
	t.Setenv("AUTH_LOGIN_PATH", "/sign-in")
	t.Setenv("AUTH_HOME_PATH", "/home")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		SuperRole:   "owner",
		SessionTTL:  2 * time.Hour,
		RememberTTL: 48 * time.Hour,
		LoginPath:   "/sign-in",
		HomePath:    "/home",
		// Parsed from envDefault; not set above.
		SweepInterval: 5 * time.Minute,
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		SuperRole:   "  ",
		SessionTTL:  0,
		RememberTTL: time.Minute,
		LoginPath:   "login",
		HomePath:    "",
	}

	cfg.Sanitize()

	if cfg.SuperRole != "super-admin" {
		t.Fatalf("SuperRole = %q, want super-admin", cfg.SuperRole)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.RememberTTL != cfg.SessionTTL {
		t.Fatalf("RememberTTL = %v, want it raised to SessionTTL", cfg.RememberTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("SweepInterval = %v, want 5m", cfg.SweepInterval)
	}
	if cfg.LoginPath != "/login" || cfg.HomePath != "/dashboard" {
		t.Fatalf("unexpected paths: login=%q home=%q", cfg.LoginPath, cfg.HomePath)
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name        string
		in          APIConfig
		wantBaseURL string
		wantTimeout time.Duration
	}{
		{
			name:        "trailing slash trimmed",
			in:          APIConfig{BaseURL: " https://api.example.com/api/ ", Timeout: time.Second},
			wantBaseURL: "https://api.example.com/api",
			wantTimeout: time.Second,
		},
		{
			name:        "empty base url restored",
			in:          APIConfig{BaseURL: "", Timeout: -1},
			wantBaseURL: DefaultAPIBaseURL,
			wantTimeout: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Sanitize()
			if cfg.BaseURL != tt.wantBaseURL {
				t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, tt.wantBaseURL)
			}
			if cfg.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, tt.wantTimeout)
			}
		})
	}
}

func TestHTTPConfig_SanitizeCookieDomain(t *testing.T) {
	tests := map[string]string{
		"":                    "",
		"localhost":           "localhost",
		".Admin.Example.com":  "admin.example.com",
		"com":                 "",
		"co.uk":               "",
		" console.example.io": "console.example.io",
	}

	for input, want := range tests {
		cfg := HTTPConfig{CookieDomain: input}
		cfg.Sanitize()
		if cfg.CookieDomain != want {
			t.Errorf("Sanitize(%q) cookie domain = %q, want %q", input, cfg.CookieDomain, want)
		}
	}
}

func TestCacheConfig_Sanitize(t *testing.T) {
	cfg := CacheConfig{ViewTTL: -time.Second}
	cfg.Sanitize()

	if cfg.Enabled() {
		t.Fatalf("expected negative TTL to disable the view cache")
	}
	if cfg.ViewPrefix != "cms:view:" {
		t.Fatalf("ViewPrefix = %q, want default", cfg.ViewPrefix)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "cms_console" {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
}

func TestCLIConfig_SanitizeKeepsExplicitPath(t *testing.T) {
	cfg := CLIConfig{SessionFile: " /tmp/cms/session.json "}
	cfg.Sanitize()

	if cfg.SessionFile != "/tmp/cms/session.json" {
		t.Fatalf("SessionFile = %q", cfg.SessionFile)
	}
}
