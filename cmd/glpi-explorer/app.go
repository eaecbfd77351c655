package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/term"

	"glpiexplorer/internal/config"
	"glpiexplorer/internal/glpi"
	"glpiexplorer/internal/logging"
)

// app carries the state shared by every command of one invocation
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	// stored is the config as read from disk; cfg adds environment overrides
	// and is what the client sees. Only stored is ever written back.
	stored *config.Config
	cfg    *config.Config
	path   string
	logger *slog.Logger

	// ephemeral sessions live for one run only: the settings come from the
	// environment alone, or the environment points at another server than
	// the stored token belongs to
	ephemeral bool

	// prompter and interactive are swapped out in tests
	prompter    *config.Prompter
	interactive func() bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// setup loads .env files and builds the logger. It runs before any command.
func (a *app) setup() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	a.logger = a.newLogger(a.logLevel)
	return nil
}

func (a *app) newLogger(level string) *slog.Logger {
	if a.stderr == io.Writer(os.Stderr) {
		return logging.New(logging.ParseLevel(level))
	}
	return logging.NewWithWriter(a.stderr, logging.ParseLevel(level), true)
}

// loadConfig reads the config file, prompting for one when none exists and
// stdin is a terminal. Without a terminal the environment alone may supply a
// complete configuration.
func (a *app) loadConfig() error {
	stored, path, err := a.readConfig()
	envOnly := false
	switch {
	case err == nil:
	case errors.Is(err, config.ErrNotConfigured):
		if a.interactive() {
			fmt.Fprintln(a.stderr, "No configuration found, let's create one.")
			if stored, err = a.getPrompter().PromptConfig(nil); err != nil {
				return err
			}
			if err := stored.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Configuration saved to %s\n", path)
		} else {
			stored, envOnly = config.DefaultConfig(), true
		}
	default:
		return err
	}

	effective := *stored
	effective.ApplyEnv()
	ephemeral := envOnly
	if effective.GLPIURL != config.NormalizeURL(stored.GLPIURL) {
		// A session token is only valid on the server that issued it
		effective.SessionToken = ""
		ephemeral = true
	}
	if err := effective.Validate(); err != nil {
		if envOnly {
			return fmt.Errorf("%w: run \"glpi-explorer reconfigure\" or set the GLPI_* variables (%v)", config.ErrNotConfigured, err)
		}
		return fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	a.stored, a.cfg, a.path, a.ephemeral = stored, &effective, path, ephemeral

	// --log-level wins over the config file
	if a.logLevel == "" {
		a.logger = a.newLogger(effective.LogLevel)
	}
	a.logger.Debug("configuration loaded", "path", path)
	return nil
}

// readConfig returns the stored config and its path. When no config exists
// the error is ErrNotConfigured and the path is where one should be created.
func (a *app) readConfig() (*config.Config, string, error) {
	if a.configPath != "" {
		cfg, path, err := config.LoadFromPath(a.configPath)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, a.configPath, config.ErrNotConfigured
		}
		return cfg, path, err
	}

	cfg, path, err := config.Load()
	if errors.Is(err, config.ErrNotConfigured) {
		return nil, config.DefaultConfigPath(), err
	}
	return cfg, path, err
}

func (a *app) getPrompter() *config.Prompter {
	if a.prompter == nil {
		a.prompter = config.NewPrompter()
	}
	return a.prompter
}

func (a *app) client() *glpi.Client {
	return glpi.NewClient(*a.cfg, glpi.WithLogger(a.logger))
}

// saveSession persists token to the config file when it changed. Ephemeral
// sessions are only kept in memory.
func (a *app) saveSession(token string) error {
	a.cfg.SessionToken = token
	if a.ephemeral {
		a.logger.Debug("session token not persisted", "reason", "settings differ from the config file")
		return nil
	}
	if a.stored.SessionToken == token {
		return nil
	}
	a.stored.SessionToken = token
	if err := a.stored.Save(a.path); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	a.logger.Debug("session token saved", "path", a.path)
	return nil
}
