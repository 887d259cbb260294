// Package manager provides plugin management with configuration support.
package manager

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blockies/internal/plugin/executor"
	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/plugin/output/html"
	"github.com/jmylchreest/blockies/internal/plugin/output/jsonout"
	"github.com/jmylchreest/blockies/internal/plugin/output/png"
	"github.com/jmylchreest/blockies/internal/plugin/output/svg"
	"github.com/jmylchreest/blockies/internal/plugin/protocol"
)

const (
	// EnvEnabledPlugins is a comma-separated whitelist of plugin names.
	EnvEnabledPlugins = "BLOCKIES_ENABLED_PLUGINS"

	// EnvDisabledPlugins is a comma-separated list of plugin names to disable.
	EnvDisabledPlugins = "BLOCKIES_DISABLED_PLUGINS"

	// allPlugins matches every plugin in either list.
	allPlugins = "all"
)

// Config holds plugin configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable.
	DisabledPlugins []string

	// EnabledPlugins is a list of plugin names to explicitly enable.
	// If set, only these plugins are enabled (whitelist mode).
	EnabledPlugins []string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config         Config
	outputRegistry *output.Registry
	runner         executor.ProcessRunner
	logger         hclog.Logger
	useEnv         bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config:         Config{},
		outputRegistry: output.NewRegistry(),
		runner:         executor.NewRealProcessRunner(),
		logger:         hclog.NewNullLogger(),
		useEnv:         false,
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads BLOCKIES_DISABLED_PLUGINS and BLOCKIES_ENABLED_PLUGINS, which
// replace the matching list from WithConfig when set.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithCustomRegistry allows providing a custom plugin registry (useful for testing).
func (b *Builder) WithCustomRegistry(outputReg *output.Registry) *Builder {
	b.outputRegistry = outputReg
	return b
}

// WithProcessRunner sets how external plugin processes are launched.
func (b *Builder) WithProcessRunner(runner executor.ProcessRunner) *Builder {
	b.runner = runner
	return b
}

// WithLogger sets the logger for plugin registration diagnostics.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build constructs the Manager with the configured settings.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv(EnvDisabledPlugins); disabled != "" {
			config.DisabledPlugins = parsePluginList(disabled)
		}
		if enabled := os.Getenv(EnvEnabledPlugins); enabled != "" {
			config.EnabledPlugins = parsePluginList(enabled)
		}
	}

	m := &Manager{
		config:         config,
		outputRegistry: b.outputRegistry,
		runner:         b.runner,
		logger:         b.logger,
		builtins:       make(map[string]bool),
	}

	m.registerBuiltinPlugins()

	return m
}

// Manager manages plugin enable/disable state and owns the plugin registry.
type Manager struct {
	config         Config
	outputRegistry *output.Registry
	runner         executor.ProcessRunner
	logger         hclog.Logger
	builtins       map[string]bool
}

// registerBuiltinPlugins registers all built-in plugins.
func (m *Manager) registerBuiltinPlugins() {
	for _, p := range []output.Plugin{
		png.New(),
		svg.New(),
		jsonout.New(),
		html.New(),
	} {
		m.outputRegistry.Register(p)
		m.builtins[p.Name()] = true
	}
}

// GetOutputPlugin retrieves an output plugin by name.
func (m *Manager) GetOutputPlugin(name string) (output.Plugin, bool) {
	return m.outputRegistry.Get(name)
}

// IsBuiltin reports whether name is one of the plugins compiled into blockies.
func (m *Manager) IsBuiltin(name string) bool {
	return m.builtins[name]
}

// IsOutputEnabled checks if an output plugin is enabled.
func (m *Manager) IsOutputEnabled(plugin output.Plugin) bool {
	return m.isEnabled(plugin.Name())
}

// IsEnabled reports whether the plugin called name would run with "--outputs all".
func (m *Manager) IsEnabled(name string) bool {
	return m.isEnabled(name)
}

// isEnabled determines if a plugin is enabled based on configuration.
// Registered plugins are enabled unless disabled by name or by "all", or
// left out of a non-empty whitelist.
func (m *Manager) isEnabled(name string) bool {
	if slices.Contains(m.config.DisabledPlugins, allPlugins) {
		return false
	}

	if slices.Contains(m.config.DisabledPlugins, name) {
		return false
	}

	if len(m.config.EnabledPlugins) == 0 || slices.Contains(m.config.EnabledPlugins, allPlugins) {
		return true
	}

	return slices.Contains(m.config.EnabledPlugins, name)
}

// FilterOutputPlugins returns only enabled output plugins.
func (m *Manager) FilterOutputPlugins() map[string]output.Plugin {
	enabled := make(map[string]output.Plugin)
	for name, plugin := range m.outputRegistry.All() {
		if m.IsOutputEnabled(plugin) {
			enabled[name] = plugin
		}
	}
	return enabled
}

// ListOutputPlugins returns the sorted names of enabled output plugins.
func (m *Manager) ListOutputPlugins() []string {
	names := slices.Collect(maps.Keys(m.FilterOutputPlugins()))
	sort.Strings(names)
	return names
}

// AllOutputPlugins returns all registered output plugins (including disabled).
func (m *Manager) AllOutputPlugins() map[string]output.Plugin {
	return m.outputRegistry.All()
}

// UpdateConfig updates the manager's configuration without recreating plugin instances.
// This preserves flag bindings and other plugin state.
func (m *Manager) UpdateConfig(config Config) {
	m.config = config
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// SetDisabled adds a plugin to the disabled list.
func (m *Manager) SetDisabled(name string) {
	m.config.EnabledPlugins = slices.DeleteFunc(m.config.EnabledPlugins, func(s string) bool { return s == name })
	if !slices.Contains(m.config.DisabledPlugins, name) {
		m.config.DisabledPlugins = append(m.config.DisabledPlugins, name)
	}
}

// SetEnabled adds a plugin to the enabled list (whitelist mode).
func (m *Manager) SetEnabled(name string) {
	m.config.DisabledPlugins = slices.DeleteFunc(m.config.DisabledPlugins, func(s string) bool { return s == name })
	if !slices.Contains(m.config.EnabledPlugins, name) {
		m.config.EnabledPlugins = append(m.config.EnabledPlugins, name)
	}
}

// QueryPluginInfo runs a plugin with --plugin-info and returns its
// metadata. Incompatible protocol versions are rejected.
func (m *Manager) QueryPluginInfo(path string) (protocol.PluginInfo, error) {
	exec, err := executor.NewWithVerboseAndRunner(path, false, m.runner)
	if err != nil {
		return protocol.PluginInfo{}, err
	}
	defer exec.Close()

	return exec.Info(), nil
}

// RegisterExternalPlugin registers the renderer executable at path. An empty
// name uses the name the plugin reports, then the executable's base name.
// Built-in plugin names cannot be replaced.
func (m *Manager) RegisterExternalPlugin(name, path, description string) (*ExternalOutputPlugin, error) {
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("plugin path must be absolute: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("plugin not found or not accessible: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("plugin path is a directory, not a file: %s", path)
	}

	pluginInfo, err := m.QueryPluginInfo(path)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin info: %w", err)
	}

	if pluginInfo.Type != "" && pluginInfo.Type != protocol.PluginName {
		return nil, fmt.Errorf("plugin %q has type %q, only %q plugins are supported", path, pluginInfo.Type, protocol.PluginName)
	}
	if pluginInfo.ProtocolVersion == "" {
		m.logger.Warn("plugin does not report a protocol version", "path", path)
	}

	if name == "" {
		name = pluginInfo.Name
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if m.IsBuiltin(name) {
		return nil, fmt.Errorf("plugin name %q is reserved for a built-in plugin", name)
	}

	if description == "" {
		description = pluginInfo.Description
	}

	plugin := NewExternalOutputPlugin(name, description, path)
	plugin.runner = m.runner
	m.outputRegistry.Register(plugin)

	m.logger.Debug("registered external plugin", "name", name, "path", path, "protocol", pluginInfo.PluginProtocol)

	return plugin, nil
}

// parsePluginList parses a comma-separated list of plugin names.
func parsePluginList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
