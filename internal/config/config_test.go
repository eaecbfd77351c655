package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points every config location at a fresh temp directory
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(EnvConfigPath, "")
	return home
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.GLPIURL = "http://glpi.example.com/apirest.php"
	cfg.UserLogin = "jdoe"
	cfg.UserPassword = "s3cret"
	cfg.AppToken = "app-token"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Timeout.Duration() != 10*time.Second {
		t.Errorf("Timeout = %s, want 10s", cfg.Timeout.Duration())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := validConfig()
	cfg.GLPIURL = "http://glpi.example.com/apirest.php/"
	cfg.SessionToken = "sess-1"
	cfg.Timeout = Duration(30 * time.Second)

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("mode = %o, want 600", perm)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.GLPIURL != "http://glpi.example.com/apirest.php" {
		t.Errorf("GLPIURL = %q, want trailing slash trimmed", loaded.GLPIURL)
	}
	if loaded.SessionToken != "sess-1" {
		t.Errorf("SessionToken = %q, want sess-1", loaded.SessionToken)
	}
	if loaded.Timeout.Duration() != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", loaded.Timeout.Duration())
	}
}

func TestSaveTightensExistingMode(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := validConfig().Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, _ := os.Stat(configPath)
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("mode = %o, want 600", perm)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		os.WriteFile(path, []byte("glpi_url: [unclosed"), 0600)
		if _, _, err := LoadFromPath(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		os.WriteFile(path, []byte("timeout: soon\n"), 0600)
		if _, _, err := LoadFromPath(path); err == nil {
			t.Error("expected duration error")
		}
	})
}

func TestLoadNotConfigured(t *testing.T) {
	isolate(t)
	chdir(t, t.TempDir())

	_, _, err := Load()
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Load() error = %v, want ErrNotConfigured", err)
	}
}

func TestLoadPrefersExplicitPath(t *testing.T) {
	isolate(t)
	chdir(t, t.TempDir())

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	cfg := validConfig()
	cfg.UserLogin = "explicit"
	if err := cfg.Save(explicit); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, explicit)

	loaded, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != explicit || loaded.UserLogin != "explicit" {
		t.Errorf("loaded %q from %s, want explicit from %s", loaded.UserLogin, path, explicit)
	}
}

func TestFindConfigPath(t *testing.T) {
	home := isolate(t)
	chdir(t, t.TempDir())

	if found := FindConfigPath(); found != "" {
		t.Errorf("FindConfigPath() = %q, want empty", found)
	}

	xdgPath := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	if err := DefaultConfig().Save(xdgPath); err != nil {
		t.Fatal(err)
	}
	if found := FindConfigPath(); found != xdgPath {
		t.Errorf("FindConfigPath() = %q, want %q", found, xdgPath)
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(); found != xdgPath {
		t.Errorf("FindConfigPath() = %q, want fallback %q", found, xdgPath)
	}

	if got := DefaultConfigPath(); got != "/nonexistent/path.yaml" {
		t.Errorf("DefaultConfigPath() = %q, want explicit path", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		desc    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"complete", func(*Config) {}, false},
		{"user token instead of password", func(c *Config) { c.UserPassword = ""; c.UserToken = "tok" }, false},
		{"missing url", func(c *Config) { c.GLPIURL = "" }, true},
		{"non http url", func(c *Config) { c.GLPIURL = "glpi.example.com" }, true},
		{"missing app token", func(c *Config) { c.AppToken = "" }, true},
		{"missing credentials", func(c *Config) { c.UserPassword = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummaryMasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.SessionToken = "sess-xyz"

	summary := cfg.Summary()
	for _, secret := range []string{"s3cret", "app-token", "sess-xyz"} {
		if strings.Contains(summary, secret) {
			t.Errorf("summary leaks %q:\n%s", secret, summary)
		}
	}
	if !strings.Contains(summary, "user_login: jdoe") {
		t.Errorf("summary missing login:\n%s", summary)
	}
	if cfg.Redacted()["user_token"] != "" {
		t.Error("empty secret should stay empty")
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
