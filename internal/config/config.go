// Package config reads and writes the blockies configuration file: generation
// defaults, plugin enable/disable state and registered external plugins.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the configuration file.
	FileName = "config.yaml"

	// CurrentVersion is the configuration format version written by Save.
	CurrentVersion = "1"

	// All is the pseudo plugin name matching every plugin.
	All = "all"
)

// Config represents the configuration file structure.
type Config struct {
	// Version of the configuration format.
	Version string `yaml:"version,omitempty"`

	// Defaults apply to generate and batch when the matching flag is not set.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// EnabledPlugins is a list of explicitly enabled plugins (whitelist).
	EnabledPlugins []string `yaml:"enabled_plugins,omitempty"`

	// DisabledPlugins is a list of explicitly disabled plugins.
	DisabledPlugins []string `yaml:"disabled_plugins,omitempty"`

	// ExternalPlugins maps plugin names to their metadata.
	ExternalPlugins map[string]*ExternalPlugin `yaml:"external_plugins,omitempty"`
}

// Defaults holds generation defaults. Zero values mean "not configured".
type Defaults struct {
	Size      int      `yaml:"size,omitempty"`
	Scale     int      `yaml:"scale,omitempty"`
	Color     string   `yaml:"color,omitempty"`
	BgColor   string   `yaml:"bg_color,omitempty"`
	SpotColor string   `yaml:"spot_color,omitempty"`
	SeedMode  string   `yaml:"seed_mode,omitempty"`
	Outputs   []string `yaml:"outputs,omitempty"`
}

// ExternalPlugin contains metadata about an external renderer plugin.
type ExternalPlugin struct {
	// Name is the plugin's name (from --plugin-info).
	Name string `yaml:"name"`

	// Path is the absolute path to the plugin executable.
	Path string `yaml:"path"`

	// Protocol is the plugin protocol (go-plugin or json-stdio).
	Protocol string `yaml:"protocol,omitempty"`

	// Version is the plugin version if available.
	Version string `yaml:"version,omitempty"`

	// Description is the plugin description if available.
	Description string `yaml:"description,omitempty"`

	// AddedAt is the RFC 3339 time the plugin was registered.
	AddedAt string `yaml:"added_at,omitempty"`

	// Args are passed to the plugin with every render.
	Args map[string]any `yaml:"args,omitempty"`
}

// New returns an empty configuration.
func New() *Config {
	return &Config{
		Version:         CurrentVersion,
		ExternalPlugins: make(map[string]*ExternalPlugin),
	}
}

// Dir returns the blockies configuration directory:
// $XDG_CONFIG_HOME/blockies, or ~/.config/blockies.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "blockies"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(home, ".config", "blockies"), nil
}

// DefaultPath returns the path of the configuration file in Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads and validates the configuration at path. A missing file
// returns an error satisfying errors.Is(err, fs.ErrNotExist).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified config file
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.ExternalPlugins == nil {
		cfg.ExternalPlugins = make(map[string]*ExternalPlugin)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrNew loads the configuration at path, or returns an empty one when
// the file does not exist.
func LoadOrNew(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return cfg, err
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values the CLI cannot fix up on its own.
func (c *Config) Validate() error {
	if c.Defaults.Size < 0 {
		return fmt.Errorf("defaults.size must not be negative: %d", c.Defaults.Size)
	}
	if c.Defaults.Scale < 0 {
		return fmt.Errorf("defaults.scale must not be negative: %d", c.Defaults.Scale)
	}

	for key, meta := range c.ExternalPlugins {
		if meta == nil {
			return fmt.Errorf("external plugin %q has no metadata", key)
		}
		if !filepath.IsAbs(meta.Path) {
			return fmt.Errorf("external plugin %q path must be absolute: %q", key, meta.Path)
		}
	}

	return nil
}

// Enable adds name to the enabled list and removes it from the disabled
// list. Enabling All clears the disabled list.
func (c *Config) Enable(name string) {
	if name == All {
		c.DisabledPlugins = nil
		c.EnabledPlugins = []string{All}
		return
	}

	c.DisabledPlugins = remove(c.DisabledPlugins, name)
	if !slices.Contains(c.EnabledPlugins, name) {
		c.EnabledPlugins = append(c.EnabledPlugins, name)
	}
}

// Disable adds name to the disabled list and removes it from the enabled
// list. Disabling All clears the enabled list.
func (c *Config) Disable(name string) {
	if name == All {
		c.EnabledPlugins = nil
		c.DisabledPlugins = []string{All}
		return
	}

	c.EnabledPlugins = remove(c.EnabledPlugins, name)
	if !slices.Contains(c.DisabledPlugins, name) {
		c.DisabledPlugins = append(c.DisabledPlugins, name)
	}
}

// Clear removes name from both lists, restoring its default state.
func (c *Config) Clear(name string) {
	c.EnabledPlugins = remove(c.EnabledPlugins, name)
	c.DisabledPlugins = remove(c.DisabledPlugins, name)
}

// AddExternal registers an external plugin under its name, replacing any
// previous entry.
func (c *Config) AddExternal(meta *ExternalPlugin) {
	if c.ExternalPlugins == nil {
		c.ExternalPlugins = make(map[string]*ExternalPlugin)
	}
	c.ExternalPlugins[meta.Name] = meta
}

// RemoveExternal forgets an external plugin and any enable/disable state
// for it. It reports whether the plugin was registered.
func (c *Config) RemoveExternal(name string) bool {
	if _, ok := c.ExternalPlugins[name]; !ok {
		return false
	}
	delete(c.ExternalPlugins, name)
	c.Clear(name)
	return true
}

// ExternalNames returns the registered external plugin names, sorted.
func (c *Config) ExternalNames() []string {
	names := make([]string, 0, len(c.ExternalPlugins))
	for name := range c.ExternalPlugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func remove(list []string, name string) []string {
	return slices.DeleteFunc(list, func(s string) bool {
		return s == name
	})
}
