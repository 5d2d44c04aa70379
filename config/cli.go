package config

import (
	"os"
	"path/filepath"
	"strings"
)

// CLIConfig configures the cms-admin operator CLI.
type CLIConfig struct {
	// SessionFile stores the signed-in session between CLI invocations.
	// Defaults to $XDG_CONFIG_HOME/cms-admin/session.json (or the OS equivalent).
	SessionFile string `env:"CMS_ADMIN_SESSION_FILE"`
}

// Sanitize resolves the default session file location.
func (c *CLIConfig) Sanitize() {
	c.SessionFile = strings.TrimSpace(c.SessionFile)
	if c.SessionFile != "" {
		return
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	c.SessionFile = filepath.Join(dir, "cms-admin", "session.json")
}
