// Package cli provides the command-line interface for blockies.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/config"
	"github.com/jmylchreest/blockies/internal/plugin/manager"
	"github.com/jmylchreest/blockies/internal/version"
)

// app is the state shared by every command of one root command tree.
type app struct {
	manager    *manager.Manager
	config     *config.Config
	configPath string
	logger     hclog.Logger
	verbose    bool
	quiet      bool

	// generateCmd carries the plugin flags, which plugins info reports.
	generateCmd *cobra.Command
}

// NewRootCmd builds the blockies command tree with a fresh plugin manager.
func NewRootCmd() *cobra.Command {
	a := &app{
		manager: manager.NewBuilder().
			WithEnvConfig().
			Build(),
		logger: hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "blockies",
		Short: "A deterministic identicon generator",
		Long: `Blockies turns a seed string into a small, symmetric, coloured block
identicon. The same seed always produces the same icon.

Icons are written by output plugins (png, svg, json, html, or external
renderer plugins) and can be previewed directly in the terminal.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/blockies/config.yaml)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	a.generateCmd = newGenerateCmd(a)
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(a.generateCmd)
	rootCmd.AddCommand(newBatchCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))
	rootCmd.AddCommand(newPluginsCmd(a))

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup configures logging and loads the config file before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)

	if a.configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		a.configPath = path
	}

	cfg, err := config.LoadOrNew(a.configPath)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger.Debug("loaded config", "path", a.configPath, "external_plugins", len(cfg.ExternalPlugins))

	// The config file takes precedence over environment variables.
	if len(cfg.EnabledPlugins) > 0 || len(cfg.DisabledPlugins) > 0 {
		a.manager.UpdateConfig(manager.Config{
			EnabledPlugins:  cfg.EnabledPlugins,
			DisabledPlugins: cfg.DisabledPlugins,
		})
	}

	return nil
}

// newLogger returns the CLI logger. Quiet wins over verbose.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "blockies",
		Output: w,
		Level:  level,
	})
}

// registerExternalPlugins registers the external plugins named in the config
// file. Plugins that cannot be queried are skipped with a warning.
func (a *app) registerExternalPlugins(dryRun bool, pluginArgs map[string]map[string]any) {
	for _, name := range a.config.ExternalNames() {
		meta := a.config.ExternalPlugins[name]

		p, err := a.manager.RegisterExternalPlugin(name, meta.Path, meta.Description)
		if err != nil {
			a.logger.Warn("failed to register external plugin", "name", name, "error", err)
			continue
		}

		p.SetDryRun(dryRun)
		p.SetVerbose(a.verbose)

		args := meta.Args
		if override, ok := pluginArgs[name]; ok {
			args = override
		}
		if len(args) > 0 {
			p.SetArgs(args)
		}
	}
}

// saveConfig writes the config file back to where it was loaded from.
func (a *app) saveConfig() error {
	if err := a.config.Save(a.configPath); err != nil {
		return err
	}
	a.logger.Debug("saved config", "path", a.configPath)
	return nil
}

// printf writes user-facing output unless --quiet is set.
func (a *app) printf(cmd *cobra.Command, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
