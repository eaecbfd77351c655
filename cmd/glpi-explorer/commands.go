package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"glpiexplorer/internal/codec"
	"glpiexplorer/internal/config"
	"glpiexplorer/internal/engine"
	"glpiexplorer/internal/glpi"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newRootCmdWithApp(newApp(stdout, stderr))
}

func newRootCmdWithApp(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "glpi-explorer",
		Short:   "Explore and classify network assets from GLPI",
		Version: version,
		Long: `glpi-explorer queries the GLPI REST API for network assets and
classifies them from their naming convention: SW switches, HB hubs,
PP patch panels and WO wall outlets.

Connection settings are read from the config file, created interactively
on first use, and can be overridden with GLPI_* environment variables or
a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", ~/.config/"+config.ConfigDirName+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	root.AddCommand(
		newFindCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newReconfigureCmd(a),
		newCheckConfigCmd(a),
	)
	return root
}

func newFindCmd(a *app) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Find a device by name and show its classification",
		Long: `Search Computer, NetworkEquipment, PassiveDevice and Cable assets for
<name>. An exact match is preferred over partial matches. The device is
classified, its network ports are listed and, depending on its type, the
hub uplink or the patch panel / wall outlet internal links are resolved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := codec.ForFormat(format)
			if err != nil {
				return err
			}
			if err := a.loadConfig(); err != nil {
				return err
			}

			name := strings.Join(args, " ")
			report, err := a.lookup(cmd, name)
			if err != nil {
				if errors.Is(err, glpi.ErrNotFound) {
					return fmt.Errorf("no device matches %q", name)
				}
				return err
			}
			if strict {
				if err := engine.CheckLinks(report.Device); err != nil {
					return err
				}
			}
			return exporter.Export(report, a.stdout)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "text", "Output format: "+strings.Join(codec.Formats(), ", "))
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when several OUT ports share the number of an IN port")
	return cmd
}

// lookup runs the engine and keeps the stored session token in sync with the
// client. A stored token the server no longer accepts is dropped and the
// lookup is retried once with a fresh session.
func (a *app) lookup(cmd *cobra.Command, name string) (engine.Report, error) {
	ctx := cmd.Context()

	client := a.client()
	report, err := engine.New(client, a.logger).Lookup(ctx, name)
	if errors.Is(err, glpi.ErrUnauthorized) && a.cfg.HasSession() {
		a.logger.Warn("stored session rejected, opening a new one")
		if err := a.saveSession(""); err != nil {
			return engine.Report{}, err
		}
		client = a.client()
		report, err = engine.New(client, a.logger).Lookup(ctx, name)
	}

	if token := client.SessionToken(); token != "" {
		if saveErr := a.saveSession(token); saveErr != nil {
			a.logger.Warn("could not persist session token", "error", saveErr)
		}
	}
	return report, err
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Open a GLPI session and store its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}

			// Always open a fresh session
			cfg := *a.cfg
			cfg.SessionToken = ""
			client := glpi.NewClient(cfg, glpi.WithLogger(a.logger))

			token, err := client.InitSession(cmd.Context())
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err := a.saveSession(token); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "Session opened.")
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the stored GLPI session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			if !a.cfg.HasSession() {
				fmt.Fprintln(a.stdout, "No active session.")
				return nil
			}

			if err := a.client().KillSession(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			if err := a.saveSession(""); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "Session closed.")
			return nil
		},
	}
}

func newReconfigureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reconfigure",
		Short: "Enter the GLPI connection settings again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, path, err := a.readConfig()
			if err != nil && !errors.Is(err, config.ErrNotConfigured) {
				a.logger.Warn("ignoring unreadable config", "path", path, "error", err)
				current = nil
			}

			cfg, err := a.getPrompter().PromptConfig(current)
			if err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Configuration saved to %s\n", path)
			return nil
		},
	}
}

func newCheckConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Show the active configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Configuration loaded from %s\n", a.path)
			fmt.Fprint(a.stdout, a.cfg.Summary())
			return nil
		},
	}
}
