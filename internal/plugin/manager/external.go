package manager

import (
	"context"
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/executor"
	"github.com/jmylchreest/blockies/internal/plugin/protocol"
)

const versionUnknown = "unknown"

// ExternalOutputPlugin wraps an external executable as an output plugin.
type ExternalOutputPlugin struct {
	name        string
	description string
	path        string
	args        map[string]any
	dryRun      bool
	verbose     bool
	baseName    string
	runner      executor.ProcessRunner
}

// NewExternalOutputPlugin creates a new external output plugin wrapper.
func NewExternalOutputPlugin(name, description, path string) *ExternalOutputPlugin {
	return &ExternalOutputPlugin{
		name:        name,
		description: description,
		path:        path,
		runner:      executor.NewRealProcessRunner(),
	}
}

// Name returns the plugin's name.
func (p *ExternalOutputPlugin) Name() string {
	return p.name
}

// Description returns the plugin's description.
func (p *ExternalOutputPlugin) Description() string {
	return p.description
}

// Path returns the plugin executable.
func (p *ExternalOutputPlugin) Path() string {
	return p.path
}

// Version queries the plugin executable for its version.
func (p *ExternalOutputPlugin) Version() string {
	exec, err := p.executor()
	if err != nil {
		return versionUnknown
	}
	defer exec.Close()

	if v := exec.Info().Version; v != "" {
		return v
	}
	return versionUnknown
}

// SetArgs sets custom arguments passed to the plugin with every render.
func (p *ExternalOutputPlugin) SetArgs(args map[string]any) {
	p.args = args
}

// GetArgs returns custom arguments for this plugin.
func (p *ExternalOutputPlugin) GetArgs() map[string]any {
	return p.args
}

// SetDryRun sets the dry-run mode for this plugin.
func (p *ExternalOutputPlugin) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// GetDryRun returns the dry-run mode for this plugin.
func (p *ExternalOutputPlugin) GetDryRun() bool {
	return p.dryRun
}

// SetVerbose sets the verbose flag for this plugin.
func (p *ExternalOutputPlugin) SetVerbose(verbose bool) {
	p.verbose = verbose
}

// SetBaseName sets a prefix for the returned file names, so several icons
// rendered by one plugin do not collide.
func (p *ExternalOutputPlugin) SetBaseName(name string) {
	p.baseName = name
}

// Generate executes the external plugin and returns its output.
func (p *ExternalOutputPlugin) Generate(ic *icon.Icon) (map[string][]byte, error) {
	if ic == nil {
		return nil, fmt.Errorf("icon cannot be nil")
	}

	exec, err := p.executor()
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin executor: %w", err)
	}
	defer exec.Close()

	data := ic.Data()
	data.DryRun = p.dryRun
	if len(p.args) > 0 {
		data.PluginArgs = maps.Clone(p.args)
	}

	files, err := exec.Render(context.Background(), data)
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w", err)
	}

	return p.rename(files), nil
}

// rename prefixes every file with the base name, if one is set.
func (p *ExternalOutputPlugin) rename(files map[string][]byte) map[string][]byte {
	result := make(map[string][]byte, len(files))
	for name, content := range files {
		if p.baseName != "" {
			name = p.baseName + "-" + name
		}
		result[name] = content
	}
	return result
}

// GetFlagHelp returns the flags the plugin documents.
func (p *ExternalOutputPlugin) GetFlagHelp(ctx context.Context) ([]protocol.FlagHelp, error) {
	exec, err := p.executor()
	if err != nil {
		return nil, err
	}
	defer exec.Close()

	return exec.GetFlagHelp(ctx)
}

func (p *ExternalOutputPlugin) executor() (*executor.PluginExecutor, error) {
	return executor.NewWithVerboseAndRunner(p.path, p.verbose, p.runner)
}

// RegisterFlags is a no-op for external plugins (they don't have flags).
// Arguments reach them through SetArgs.
func (p *ExternalOutputPlugin) RegisterFlags(_ *cobra.Command) {}

// Validate checks if the plugin is valid.
func (p *ExternalOutputPlugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the directory plugin output is written to.
func (p *ExternalOutputPlugin) DefaultOutputDir() string {
	return "."
}
