package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/config"
	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/manager"
	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/security"
	"github.com/jmylchreest/blockies/internal/seed"
)

// iconFlags are the icon options shared by generate, batch and preview.
type iconFlags struct {
	size      int
	scale     int
	color     string
	bgColor   string
	spotColor string
}

func (f *iconFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.size, "size", icon.DefaultSize, "number of cells per side")
	cmd.Flags().IntVar(&f.scale, "scale", icon.DefaultScale, "pixels per cell")
	cmd.Flags().StringVar(&f.color, "color", "", "foreground colour (default: derived from the seed)")
	cmd.Flags().StringVar(&f.bgColor, "bg-color", "", "background colour (default: derived from the seed)")
	cmd.Flags().StringVar(&f.spotColor, "spot-color", "", "spot colour (default: derived from the seed)")
}

// options merges the flags with the config file defaults. Flags set on the
// command line win and must be positive.
func (f *iconFlags) options(cmd *cobra.Command, defaults config.Defaults) (icon.Options, error) {
	flags := cmd.Flags()

	if flags.Changed("size") && f.size <= 0 {
		return icon.Options{}, fmt.Errorf("%w: --size %d", icon.ErrInvalidSize, f.size)
	}
	if flags.Changed("scale") && f.scale <= 0 {
		return icon.Options{}, fmt.Errorf("%w: --scale %d", icon.ErrInvalidScale, f.scale)
	}

	pickInt := func(name string, flag, def int) int {
		if flags.Changed(name) || def == 0 {
			return flag
		}
		return def
	}
	pickString := func(name, flag, def string) string {
		if flags.Changed(name) || def == "" {
			return flag
		}
		return def
	}

	return icon.Options{
		Size:      pickInt("size", f.size, defaults.Size),
		Scale:     pickInt("scale", f.scale, defaults.Scale),
		Color:     pickString("color", f.color, defaults.Color),
		BgColor:   pickString("bg-color", f.bgColor, defaults.BgColor),
		SpotColor: pickString("spot-color", f.spotColor, defaults.SpotColor),
	}, nil
}

// seedFlags select the seed of a single icon.
type seedFlags struct {
	value string
	mode  string
	file  string
}

func (f *seedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.value, "seed", "s", "", "seed text (an empty string is a valid seed)")
	cmd.Flags().StringVar(&f.mode, "seed-mode", "", "seed mode: manual, random, filepath, content")
	cmd.Flags().StringVar(&f.file, "seed-file", "", "file used by the filepath and content seed modes")
}

// resolve returns the seed text, or nil for a random icon. An explicit
// --seed-mode wins; otherwise --seed implies manual, then the config
// default applies, then --seed-file implies content.
func (f *seedFlags) resolve(cmd *cobra.Command, defaults config.Defaults) (*string, error) {
	seedSet := cmd.Flags().Changed("seed")

	modeName := f.mode
	if !cmd.Flags().Changed("seed-mode") {
		switch {
		case seedSet:
			modeName = string(seed.ModeManual)
		case defaults.SeedMode != "":
			modeName = defaults.SeedMode
		case f.file != "":
			modeName = string(seed.ModeContent)
		default:
			modeName = string(seed.ModeRandom)
		}
	}

	mode, err := seed.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	cfg := seed.Config{Mode: mode, Path: f.file}
	if seedSet {
		value := f.value
		cfg.Value = &value
	}

	return seed.Calculate(cfg)
}

// outputFlags select and configure output plugins.
type outputFlags struct {
	outputs    []string
	dryRun     bool
	pluginArgs map[string]string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.outputs, "outputs", "o", []string{config.All}, "output plugins (comma-separated or 'all')")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show what would be written without writing files")
	cmd.Flags().StringToStringVar(&f.pluginArgs, "plugin-args", nil, "external plugin arguments as JSON (name='{\"key\":\"value\"}', repeatable)")
}

// parsePluginArgs decodes the --plugin-args values.
func (f *outputFlags) parsePluginArgs() (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(f.pluginArgs))
	for name, raw := range f.pluginArgs {
		var args map[string]any
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, fmt.Errorf("invalid --plugin-args for %s: %w", name, err)
		}
		result[name] = args
	}
	return result, nil
}

// prepareOutputs registers external plugins and returns the selected output
// plugins, in name order when "all" is requested.
func (a *app) prepareOutputs(cmd *cobra.Command, f *outputFlags) ([]output.Plugin, error) {
	pluginArgs, err := f.parsePluginArgs()
	if err != nil {
		return nil, err
	}
	a.registerExternalPlugins(f.dryRun, pluginArgs)

	names := f.outputs
	if !cmd.Flags().Changed("outputs") && len(a.config.Defaults.Outputs) > 0 {
		names = a.config.Defaults.Outputs
	}

	plugins, err := a.selectOutputs(names)
	if err != nil {
		return nil, err
	}

	for _, p := range plugins {
		if vp, ok := p.(output.VerbosePlugin); ok {
			vp.SetVerbose(a.verbose)
		}
	}

	return plugins, nil
}

// selectOutputs resolves plugin names. "all" selects every enabled plugin;
// plugins named explicitly run even when disabled.
func (a *app) selectOutputs(names []string) ([]output.Plugin, error) {
	if slices.Contains(names, config.All) {
		enabled := a.manager.FilterOutputPlugins()
		plugins := make([]output.Plugin, 0, len(enabled))
		for _, name := range slices.Sorted(maps.Keys(enabled)) {
			plugins = append(plugins, enabled[name])
		}
		if len(plugins) == 0 {
			return nil, errors.New("no output plugins enabled")
		}
		return plugins, nil
	}

	plugins := make([]output.Plugin, 0, len(names))
	for _, name := range names {
		p, ok := a.manager.GetOutputPlugin(name)
		if !ok {
			available := slices.Sorted(maps.Keys(a.manager.AllOutputPlugins()))
			return nil, fmt.Errorf("unknown output plugin: %s (available: %s)", name, strings.Join(available, ", "))
		}
		plugins = append(plugins, p)
	}

	if len(plugins) == 0 {
		return nil, errors.New("no output plugins selected")
	}
	return plugins, nil
}

// runOutputs renders ic with every plugin and writes the files. Plugin
// failures are reported and skipped; write failures abort. It returns how
// many plugins succeeded.
func (a *app) runOutputs(cmd *cobra.Command, plugins []output.Plugin, ic *icon.Icon, baseName string, dryRun bool) (int, error) {
	succeeded := 0
	for _, p := range plugins {
		if namer, ok := p.(output.BaseNamer); ok {
			namer.SetBaseName(baseName)
		}

		if err := p.Validate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Skipping %s: %v\n", p.Name(), err)
			continue
		}

		a.logger.Debug("running output plugin", "plugin", p.Name(), "seed", ic.Seed)

		files, err := p.Generate(ic)
		if err == nil {
			err = validateFiles(p.DefaultOutputDir(), files)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s failed: %v\n", p.Name(), err)
			continue
		}

		if err := a.writeFiles(cmd, p.DefaultOutputDir(), files, dryRun); err != nil {
			return succeeded, err
		}
		succeeded++
	}
	return succeeded, nil
}

// validateFiles rejects file names that would land outside dir.
func validateFiles(dir string, files map[string][]byte) error {
	for name := range files {
		if err := security.ValidateFilePath(name, dir); err != nil {
			return fmt.Errorf("invalid output file: %w", err)
		}
	}
	return nil
}

// writeFiles writes a plugin's files under dir, in name order.
func (a *app) writeFiles(cmd *cobra.Command, dir string, files map[string][]byte, dryRun bool) error {
	for _, name := range slices.Sorted(maps.Keys(files)) {
		content := files[name]
		fullPath := filepath.Join(dir, name)

		if dryRun {
			a.printf(cmd, "  Would write: %s (%d bytes)\n", fullPath, len(content))
			continue
		}

		if err := writeFile(fullPath, content); err != nil {
			return fmt.Errorf("failed to write %s: %w", fullPath, err)
		}
		a.printf(cmd, "  ├─ %s (%d bytes)\n", fullPath, len(content))
	}
	return nil
}

// writeFile writes content to a file, creating directories as needed.
func writeFile(path string, content []byte) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 -- icons are not secret
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		icons    iconFlags
		seeds    seedFlags
		outputs  outputFlags
		baseName string
		preview  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an identicon",
		Long: `Generate an identicon from a seed and write it with one or more output plugins.

Without a seed a random one is chosen, and the icon cannot be reproduced.
Colours default to ones derived from the seed; any colour given is used
verbatim (hex, rgb(), hsl() or a CSS colour name).

Examples:
  # PNG, SVG, JSON and HTML for one seed
  blockies generate --seed 0x1234567890abcdef

  # Only a 256 pixel PNG, named after the user
  blockies generate -s alice@example.com -o png --png.pixels 256 --name alice

  # Seed from the content of a file
  blockies generate --seed-mode content --seed-file ./avatar.txt

  # Fixed background, preview without writing anything
  blockies generate -s bob --bg-color white --preview --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seedText, err := seeds.resolve(cmd, a.config.Defaults)
			if err != nil {
				return err
			}

			opts, err := icons.options(cmd, a.config.Defaults)
			if err != nil {
				return err
			}
			opts.Seed = seedText

			plugins, err := a.prepareOutputs(cmd, &outputs)
			if err != nil {
				return err
			}

			ic, err := icon.NewGenerator(icon.WithLogger(a.logger)).Build(opts)
			if err != nil {
				return err
			}

			if seedText == nil {
				a.logger.Info("generated random seed", "seed", ic.Seed)
			}

			if preview {
				if err := a.printPreview(cmd, ic); err != nil {
					return err
				}
			}

			succeeded, err := a.runOutputs(cmd, plugins, ic, baseName, outputs.dryRun)
			if err != nil {
				return err
			}
			if succeeded == 0 {
				return errors.New("no output plugins succeeded")
			}

			if !outputs.dryRun {
				a.printf(cmd, "✓ Done! Generated %d output(s) for seed %q\n", succeeded, ic.Seed)
			}
			return nil
		},
	}

	icons.register(cmd)
	seeds.register(cmd)
	outputs.register(cmd)
	cmd.Flags().StringVar(&baseName, "name", "", "base name of the generated files (default: identicon)")
	cmd.Flags().BoolVar(&preview, "preview", false, "print the icon to the terminal")

	for _, p := range a.manager.AllOutputPlugins() {
		p.RegisterFlags(cmd)
	}
	cmd.Long += "\n\nOutput plugins:\n" + describePlugins(a.manager)

	return cmd
}

// describePlugins lists the enabled output plugins for help text.
func describePlugins(mgr *manager.Manager) string {
	enabled := mgr.FilterOutputPlugins()
	if len(enabled) == 0 {
		return "  (no enabled plugins)"
	}

	lines := make([]string, 0, len(enabled))
	for _, name := range slices.Sorted(maps.Keys(enabled)) {
		lines = append(lines, fmt.Sprintf("  %-12s - %s", name, enabled[name].Description()))
	}
	return strings.Join(lines, "\n")
}
