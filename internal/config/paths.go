package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "GLPI_EXPLORER_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "glpi-explorer.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "glpi-explorer"
	// legacyDirName is where earlier releases kept config.json
	legacyDirName = "glpi_explorer"
)

// FindConfigPath searches for config file in priority order:
// 1. $GLPI_EXPLORER_CONFIG (explicit path)
// 2. ./glpi-explorer.yaml (working directory)
// 3. $XDG_CONFIG_HOME/glpi-explorer/config.yaml
// 4. ~/.config/glpi-explorer/config.yaml
//
// Returns empty string if no config file found
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// DefaultConfigPath returns the preferred location for a new config file.
// An explicit $GLPI_EXPLORER_CONFIG wins even if the file does not exist yet.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.yaml")
	}

	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}

	return ConfigFileName
}

// LegacyConfigPath returns the JSON config path used by earlier releases
func LegacyConfigPath() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", legacyDirName, "config.json")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0700)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
