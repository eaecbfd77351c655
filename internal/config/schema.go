package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version      int      `yaml:"version"`
	GLPIURL      string   `yaml:"glpi_url"`
	UserLogin    string   `yaml:"user_login,omitempty"`
	UserPassword string   `yaml:"user_password,omitempty"`
	AppToken     string   `yaml:"app_token,omitempty"`
	UserToken    string   `yaml:"user_token,omitempty"`    // alternative to login/password
	SessionToken string   `yaml:"session_token,omitempty"` // written by login, cleared by logout
	Timeout      Duration `yaml:"timeout,omitempty"`
	LogLevel     string   `yaml:"log_level,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
