// Package config provides configuration management for glpi-explorer.
//
// The config file holds the GLPI connection settings and the session token
// written by "glpi-explorer login". It is the only state the tool persists.
//
// Config file locations (priority order):
//  1. $GLPI_EXPLORER_CONFIG
//  2. ./glpi-explorer.yaml
//  3. $XDG_CONFIG_HOME/glpi-explorer/config.yaml
//  4. ~/.config/glpi-explorer/config.yaml
//
// A JSON config left by earlier releases at ~/.config/glpi_explorer/config.json
// is migrated on first load.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when no config file exists
var ErrNotConfigured = errors.New("glpi-explorer is not configured")

// Load finds and loads the config file. It returns ErrNotConfigured when
// neither a config file nor a legacy config exists.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		legacy := LegacyConfigPath()
		if legacy != "" && fileExists(legacy) {
			return MigrateLegacy(legacy, DefaultConfigPath())
		}
		return nil, "", ErrNotConfigured
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path. The file holds credentials, so
// it is only readable by its owner.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(path, 0600)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Timeout:  Duration(defaultTimeout),
		LogLevel: "info",
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = Duration(defaultTimeout)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.GLPIURL = NormalizeURL(c.GLPIURL)
}

// NormalizeURL trims whitespace and trailing slashes from an API URL
func NormalizeURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// Validate checks that the config can open a GLPI session
func (c *Config) Validate() error {
	if c.GLPIURL == "" {
		return fmt.Errorf("glpi_url is required")
	}
	if !strings.HasPrefix(c.GLPIURL, "http://") && !strings.HasPrefix(c.GLPIURL, "https://") {
		return fmt.Errorf("glpi_url must be an http(s) URL, got %q", c.GLPIURL)
	}
	if c.AppToken == "" {
		return fmt.Errorf("app_token is required")
	}
	if c.UserToken == "" && (c.UserLogin == "" || c.UserPassword == "") {
		return fmt.Errorf("either user_token or user_login and user_password are required")
	}
	return nil
}

// HasSession reports whether a session token is stored
func (c *Config) HasSession() bool {
	return c.SessionToken != ""
}

// Redacted returns the config as a key/value map with secrets masked
func (c *Config) Redacted() map[string]string {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	return map[string]string{
		"glpi_url":      c.GLPIURL,
		"user_login":    c.UserLogin,
		"user_password": mask(c.UserPassword),
		"app_token":     mask(c.AppToken),
		"user_token":    mask(c.UserToken),
		"session_token": mask(c.SessionToken),
		"timeout":       c.Timeout.Duration().String(),
		"log_level":     c.LogLevel,
	}
}

// Summary returns a human-readable config summary with secrets masked
func (c *Config) Summary() string {
	view := c.Redacted()
	keys := make([]string, 0, len(view))
	for k := range view {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if view[k] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", k, view[k])
	}
	return b.String()
}
