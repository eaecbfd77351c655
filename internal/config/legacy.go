package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// legacyConfig is the JSON layout written by earlier releases
type legacyConfig struct {
	GLPIURL      string  `json:"glpi_url"`
	UserLogin    string  `json:"user_login"`
	UserPassword string  `json:"user_password"`
	AppToken     string  `json:"app_token"`
	SessionToken *string `json:"session_token"`
}

// ParseLegacy decodes a legacy JSON config. Comments and trailing commas
// left by hand edits are tolerated.
func ParseLegacy(data []byte) (*Config, error) {
	var lc legacyConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &lc); err != nil {
		return nil, fmt.Errorf("parse legacy config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.GLPIURL = lc.GLPIURL
	cfg.UserLogin = lc.UserLogin
	cfg.UserPassword = lc.UserPassword
	cfg.AppToken = lc.AppToken
	if lc.SessionToken != nil {
		cfg.SessionToken = *lc.SessionToken
	}
	cfg.applyDefaults()

	return cfg, nil
}

// MigrateLegacy reads the legacy JSON config at from and saves it as YAML
// at to. The legacy file is left in place.
func MigrateLegacy(from, to string) (*Config, string, error) {
	data, err := os.ReadFile(from)
	if err != nil {
		return nil, from, fmt.Errorf("read legacy config: %w", err)
	}

	cfg, err := ParseLegacy(data)
	if err != nil {
		return nil, from, err
	}

	if err := cfg.Save(to); err != nil {
		return nil, to, fmt.Errorf("save migrated config: %w", err)
	}

	return cfg, to, nil
}
