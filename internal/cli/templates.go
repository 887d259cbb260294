package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/plugin/output/template"
)

// templateProvider is implemented by output plugins that render from
// overridable templates.
type templateProvider interface {
	Loader() *template.Loader
}

// templateLoaders returns the loaders of the named plugins, or of every
// plugin with templates when names is empty.
func (a *app) templateLoaders(names []string, customBase string) (map[string]*template.Loader, error) {
	plugins := a.manager.AllOutputPlugins()
	if len(names) > 0 {
		filtered := make(map[string]output.Plugin, len(names))
		for _, name := range names {
			p, ok := plugins[name]
			if !ok {
				return nil, fmt.Errorf("plugin %q not found", name)
			}
			filtered[name] = p
		}
		plugins = filtered
	}

	loaders := make(map[string]*template.Loader)
	for name, p := range plugins {
		provider, ok := p.(templateProvider)
		if !ok {
			if len(names) > 0 {
				return nil, fmt.Errorf("plugin %q has no templates", name)
			}
			continue
		}

		loader := provider.Loader()
		if customBase != "" {
			loader.WithCustomBase(customBase)
		}
		loaders[name] = loader
	}

	return loaders, nil
}

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `Manage output plugin templates.

Templates can be customised by dumping them to
$XDG_CONFIG_HOME/blockies/templates/{plugin-name}/ and editing them. Custom
templates are used instead of the embedded ones.

Examples:
  blockies plugins templates list
  blockies plugins templates dump -o html
  blockies plugins templates dump -o html --force`,
	}

	cmd.AddCommand(newTemplatesListCmd(a))
	cmd.AddCommand(newTemplatesDumpCmd(a))

	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	var plugins []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plugin templates",
		Long:  `List the embedded templates of output plugins and whether a custom override is in use.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaders, err := a.templateLoaders(plugins, "")
			if err != nil {
				return err
			}
			if len(loaders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plugins with templates")
				return nil
			}

			table := NewTable([]string{"PLUGIN", "TEMPLATE", "SOURCE", "CUSTOM PATH"})
			for _, name := range slices.Sorted(maps.Keys(loaders)) {
				loader := loaders[name]
				templates, err := loader.List()
				if err != nil {
					return fmt.Errorf("failed to list templates for %s: %w", name, err)
				}

				for _, tmpl := range templates {
					info := loader.Info(tmpl)
					source := "embedded"
					if info.UsingCustom() {
						source = "custom"
					}
					table.AddRow([]string{name, tmpl, source, info.CustomPath})
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&plugins, "output-plugins", "o", nil, "plugins to list (default: all)")

	return cmd
}

func newTemplatesDumpCmd(a *app) *cobra.Command {
	var (
		plugins  []string
		force    bool
		location string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump embedded templates for editing",
		Long: `Write embedded plugin templates to the custom template directory so they
can be edited. Existing custom templates are kept unless --force is given.

Examples:
  blockies plugins templates dump
  blockies plugins templates dump -o html --force
  blockies plugins templates dump -l ./templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customBase, err := expandHome(location)
			if err != nil {
				return err
			}

			loaders, err := a.templateLoaders(plugins, customBase)
			if err != nil {
				return err
			}

			total := 0
			for _, name := range slices.Sorted(maps.Keys(loaders)) {
				dumped, err := loaders[name].DumpAll(force)
				for _, path := range dumped {
					a.printf(cmd, "  ├─ %s\n", path)
					total++
				}

				if err != nil && !errors.Is(err, template.ErrTemplateExists) {
					return fmt.Errorf("failed to dump templates for %s: %w", name, err)
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "⊘ %s: %v\n", name, err)
				}
			}

			if total == 0 {
				a.printf(cmd, "No templates were dumped. Use --force to overwrite existing templates.\n")
				return nil
			}

			a.printf(cmd, "✓ Dumped %d template(s)\n", total)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&plugins, "output-plugins", "o", nil, "plugins to dump (default: all)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing custom templates")
	cmd.Flags().StringVarP(&location, "location", "l", "", "directory to dump templates to (default: config directory)")

	return cmd
}
