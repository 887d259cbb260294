package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/blockies/internal/config"
	"github.com/jmylchreest/blockies/internal/plugin/manager"
)

const (
	sourceBuiltin  = "builtin"
	sourceExternal = "external"

	statusEnabled  = "enabled"
	statusDisabled = "disabled"
)

func newPluginsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Manage output plugins",
		Long: `Manage blockies output plugins: list them, enable or disable them, and
register external renderer plugins.

Plugin state is stored in the config file and can be overridden with
environment variables:
  BLOCKIES_ENABLED_PLUGINS   only these plugins run with --outputs all
  BLOCKIES_DISABLED_PLUGINS  these plugins never run with --outputs all

Priority order: config file > environment variables > plugin defaults.
Plugins named with --outputs always run.`,
	}

	cmd.AddCommand(newPluginsListCmd(a))
	cmd.AddCommand(newPluginsEnableCmd(a))
	cmd.AddCommand(newPluginsDisableCmd(a))
	cmd.AddCommand(newPluginsClearCmd(a))
	cmd.AddCommand(newPluginsAddCmd(a))
	cmd.AddCommand(newPluginsDeleteCmd(a))
	cmd.AddCommand(newPluginsInfoCmd(a))
	cmd.AddCommand(newTemplatesCmd(a))

	return cmd
}

func newPluginsListCmd(a *app) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all plugins",
		Long:  `List built-in and external plugins with their enabled state.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			headers := []string{"NAME", "SOURCE", "STATUS", "DESCRIPTION"}
			if showPath {
				headers = append(headers, "PATH")
			}
			table := NewTable(headers)
			table.SetColumnMaxWidth(3, 50)

			for _, name := range slices.Sorted(maps.Keys(a.manager.AllOutputPlugins())) {
				if !a.manager.IsBuiltin(name) {
					continue
				}
				p, _ := a.manager.GetOutputPlugin(name)
				table.AddRow([]string{name, sourceBuiltin, a.status(name), p.Description(), ""})
			}

			for _, name := range a.config.ExternalNames() {
				meta := a.config.ExternalPlugins[name]
				table.AddRow([]string{name, sourceExternal, a.status(name), meta.Description, meta.Path})
			}

			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showPath, "show-path", false, "show the executable of external plugins")

	return cmd
}

func (a *app) status(name string) string {
	if a.manager.IsEnabled(name) {
		return statusEnabled
	}
	return statusDisabled
}

// knownPlugin reports whether name is a built-in, a registered external
// plugin or the "all" pseudo plugin.
func (a *app) knownPlugin(name string) bool {
	if name == config.All || a.manager.IsBuiltin(name) {
		return true
	}
	_, ok := a.config.ExternalPlugins[name]
	return ok
}

// updatePluginState applies change to the config file after checking the
// plugin exists.
func (a *app) updatePluginState(cmd *cobra.Command, name, verb string, change func(string)) error {
	if !a.knownPlugin(name) {
		return fmt.Errorf("unknown plugin: %s", name)
	}

	change(name)
	if err := a.saveConfig(); err != nil {
		return err
	}

	a.printf(cmd, "✓ Plugin %s %s\n", name, verb)
	return nil
}

func newPluginsEnableCmd(a *app) *cobra.Command {
	var clearOnly bool

	cmd := &cobra.Command{
		Use:   "enable <plugin-name>",
		Short: "Enable a plugin",
		Long: `Enable a plugin. Enabling any plugin by name switches to whitelist mode:
only enabled plugins run with --outputs all.

Examples:
  blockies plugins enable png
  blockies plugins enable all
  blockies plugins enable svg --clear  # Remove from disabled list only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearOnly {
				return a.updatePluginState(cmd, args[0], "no longer disabled", func(name string) {
					a.config.DisabledPlugins = slices.DeleteFunc(a.config.DisabledPlugins, func(s string) bool { return s == name })
				})
			}
			return a.updatePluginState(cmd, args[0], statusEnabled, a.config.Enable)
		},
	}
	cmd.Flags().BoolVarP(&clearOnly, "clear", "c", false, "only remove from the disabled list")

	return cmd
}

func newPluginsDisableCmd(a *app) *cobra.Command {
	var clearOnly bool

	cmd := &cobra.Command{
		Use:   "disable <plugin-name>",
		Short: "Disable a plugin",
		Long: `Disable a plugin so it no longer runs with --outputs all.

Examples:
  blockies plugins disable html
  blockies plugins disable all
  blockies plugins disable png --clear  # Remove from enabled list only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearOnly {
				return a.updatePluginState(cmd, args[0], "no longer enabled", func(name string) {
					a.config.EnabledPlugins = slices.DeleteFunc(a.config.EnabledPlugins, func(s string) bool { return s == name })
				})
			}
			return a.updatePluginState(cmd, args[0], statusDisabled, a.config.Disable)
		},
	}
	cmd.Flags().BoolVarP(&clearOnly, "clear", "c", false, "only remove from the enabled list")

	return cmd
}

func newPluginsClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [plugin-name]",
		Short: "Clear plugin enable/disable state",
		Long: `Return a plugin to its default state. Without a name, all enable and
disable state is cleared.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				a.config.EnabledPlugins = nil
				a.config.DisabledPlugins = nil
				if err := a.saveConfig(); err != nil {
					return err
				}
				a.printf(cmd, "✓ Cleared all plugin state\n")
				return nil
			}
			return a.updatePluginState(cmd, args[0], "cleared", a.config.Clear)
		},
	}
}

func newPluginsAddCmd(a *app) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register an external renderer plugin",
		Long: `Register an external renderer plugin executable.

The plugin is queried with --plugin-info for its name, version and protocol
(go-plugin RPC or JSON over stdin/stdout), and its protocol version is
checked for compatibility. The executable is used where it is; it is not
copied.

WARNING: Plugins run with your user permissions. Only add plugins you trust.

Examples:
  blockies plugins add ./blockies-ascii
  blockies plugins add /usr/lib/blockies/ico --name ico`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := expandHome(args[0])
			if err != nil {
				return err
			}
			path, err = filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve plugin path: %w", err)
			}

			info, err := a.manager.QueryPluginInfo(path)
			if err != nil {
				return fmt.Errorf("failed to query plugin metadata: %w", err)
			}

			p, err := a.manager.RegisterExternalPlugin(name, path, description)
			if err != nil {
				return err
			}

			action := "Added"
			if _, exists := a.config.ExternalPlugins[p.Name()]; exists {
				action = "Updated"
			}

			a.config.AddExternal(&config.ExternalPlugin{
				Name:        p.Name(),
				Path:        path,
				Protocol:    info.PluginProtocol,
				Version:     info.Version,
				Description: p.Description(),
				AddedAt:     time.Now().UTC().Format(time.RFC3339),
			})
			if err := a.saveConfig(); err != nil {
				return err
			}

			a.printf(cmd, "✓ %s plugin %s", action, p.Name())
			if info.Version != "" {
				a.printf(cmd, " %s", info.Version)
			}
			a.printf(cmd, " (%s)\n", info.PluginProtocol)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "register under this name instead of the one the plugin reports")
	cmd.Flags().StringVar(&description, "description", "", "override the plugin's description")

	return cmd
}

func newPluginsDeleteCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <plugin-name>",
		Short: "Forget an external plugin",
		Long: `Remove an external plugin from the config file. The executable itself is
left in place. Built-in plugins cannot be deleted; disable them instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if a.manager.IsBuiltin(name) {
				return fmt.Errorf("plugin %s is built in and cannot be deleted (use 'blockies plugins disable %s')", name, name)
			}
			if _, ok := a.config.ExternalPlugins[name]; !ok {
				return fmt.Errorf("plugin '%s' not found", name)
			}

			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to delete plugin '%s'? (y/N): ", name)
				response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read user input: %w", err)
				}
				if !strings.EqualFold(strings.TrimSpace(response), "y") {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			a.config.RemoveExternal(name)
			if err := a.saveConfig(); err != nil {
				return err
			}

			a.printf(cmd, "✓ Plugin '%s' deleted\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}

func newPluginsInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <plugin-name>",
		Short: "Show a plugin's details and flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := cmd.OutOrStdout()

			if a.manager.IsBuiltin(name) {
				p, _ := a.manager.GetOutputPlugin(name)
				fmt.Fprintf(out, "Name:        %s\n", name)
				fmt.Fprintf(out, "Source:      %s\n", sourceBuiltin)
				fmt.Fprintf(out, "Status:      %s\n", a.status(name))
				fmt.Fprintf(out, "Description: %s\n", p.Description())
				fmt.Fprintf(out, "Output dir:  %s\n", p.DefaultOutputDir())
				fmt.Fprint(out, a.builtinFlagHelp(name))
				return nil
			}

			meta, ok := a.config.ExternalPlugins[name]
			if !ok {
				return fmt.Errorf("plugin '%s' not found", name)
			}

			fmt.Fprintf(out, "Name:        %s\n", name)
			fmt.Fprintf(out, "Source:      %s\n", sourceExternal)
			fmt.Fprintf(out, "Status:      %s\n", a.status(name))
			fmt.Fprintf(out, "Description: %s\n", meta.Description)
			fmt.Fprintf(out, "Path:        %s\n", meta.Path)
			fmt.Fprintf(out, "Protocol:    %s\n", meta.Protocol)
			fmt.Fprintf(out, "Added:       %s\n", meta.AddedAt)

			p := manager.NewExternalOutputPlugin(name, meta.Description, meta.Path)
			fmt.Fprintf(out, "Version:     %s\n", p.Version())

			help, err := p.GetFlagHelp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to query plugin flags: %w", err)
			}
			if len(help) == 0 {
				return nil
			}

			table := NewTable([]string{"FLAG", "TYPE", "DEFAULT", "DESCRIPTION"})
			table.SetColumnMaxWidth(3, 50)
			for _, h := range help {
				table.AddRow([]string{h.Name, h.Type, h.Default, h.Description})
			}
			fmt.Fprintf(out, "\nArguments (pass with --plugin-args %s='{...}'):\n%s", name, table.Render())
			return nil
		},
	}
}

// builtinFlagHelp formats the generate flags a built-in plugin registered.
func (a *app) builtinFlagHelp(name string) string {
	table := NewTable([]string{"FLAG", "TYPE", "DEFAULT", "DESCRIPTION"})
	table.SetColumnMaxWidth(3, 50)

	rows := 0
	a.generateCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !strings.HasPrefix(f.Name, name+".") {
			return
		}
		table.AddRow([]string{"--" + f.Name, f.Value.Type(), f.DefValue, f.Usage})
		rows++
	})

	if rows == 0 {
		return ""
	}
	return "\nFlags:\n" + table.Render()
}
