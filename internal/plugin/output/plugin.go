// Package output provides the interface and registry for output plugins,
// which turn a built identicon into files.
package output

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
)

// DefaultBaseName is the file name stem used when no base name is set.
const DefaultBaseName = "identicon"

// Plugin represents an output plugin that renders an identicon to one or
// more files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "png", "svg").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate renders the icon.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(ic *icon.Icon) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the directory generated files are written to.
	DefaultOutputDir() string
}

// BaseNamer is implemented by plugins whose file names derive from a
// caller-chosen stem, so batch runs can give every icon distinct files.
type BaseNamer interface {
	SetBaseName(name string)
}

// VerbosePlugin is implemented by plugins that can log what they do.
type VerbosePlugin interface {
	SetVerbose(verbose bool)
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, replacing any plugin of the same name.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// Remove deletes a plugin by name and reports whether it was registered.
func (r *Registry) Remove(name string) bool {
	if _, ok := r.plugins[name]; !ok {
		return false
	}
	delete(r.plugins, name)
	return true
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered plugins (including disabled ones).
func (r *Registry) All() map[string]Plugin {
	// Return a copy to prevent external modification
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}
