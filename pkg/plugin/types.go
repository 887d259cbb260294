// Package plugin provides the public API for blockies renderer plugins.
// External plugins should import this package instead of internal packages.
package plugin

import "context"

// RendererPlugin is the interface that renderer plugins implement for go-plugin RPC.
type RendererPlugin interface {
	// Render creates output file(s) for the given icon.
	Render(ctx context.Context, icon IconData) (map[string][]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo

	// GetFlagHelp returns help information for plugin flags.
	GetFlagHelp() []FlagHelp
}

// IconData is a fully resolved identicon as sent to renderer plugins.
// Colours are the strings the icon was built with, unmodified.
type IconData struct {
	Seed       string         `json:"seed"`
	Size       int            `json:"size"`
	Scale      int            `json:"scale"`
	Grid       [][]int        `json:"grid"`
	Color      string         `json:"color"`
	BgColor    string         `json:"bg_color"`
	SpotColor  string         `json:"spot_color"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
	DryRun     bool           `json:"dry_run"`
}

// Width returns the edge length of the rendered icon in pixels.
func (d IconData) Width() int {
	return d.Size * d.Scale
}

// FlagHelp represents help information for a single plugin flag.
type FlagHelp struct {
	Name        string `json:"name"`        // Flag name (e.g., "stroke")
	Shorthand   string `json:"shorthand"`   // Short flag (e.g., "s")
	Type        string `json:"type"`        // Type (e.g., "string", "int", "bool")
	Default     string `json:"default"`     // Default value as string
	Description string `json:"description"` // Help text
	Required    bool   `json:"required"`    // Is this flag required?
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Type            string `json:"type"` // always "renderer"
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}
