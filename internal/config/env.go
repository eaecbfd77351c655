package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values
const (
	EnvGLPIURL      = "GLPI_URL"
	EnvAppToken     = "GLPI_APP_TOKEN"
	EnvUserLogin    = "GLPI_USER_LOGIN"
	EnvUserPassword = "GLPI_USER_PASSWORD"
	EnvUserToken    = "GLPI_USER_TOKEN"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ./.env)
// into the process environment. Variables already set are kept and missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var present []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			present = append(present, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnv overrides config values with non-empty environment variables and
// reports whether anything changed
func (c *Config) ApplyEnv() bool {
	changed := false
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" && v != *dst {
			*dst = v
			changed = true
		}
	}

	set(&c.GLPIURL, EnvGLPIURL)
	set(&c.AppToken, EnvAppToken)
	set(&c.UserLogin, EnvUserLogin)
	set(&c.UserPassword, EnvUserPassword)
	set(&c.UserToken, EnvUserToken)

	c.GLPIURL = NormalizeURL(c.GLPIURL)
	return changed
}
