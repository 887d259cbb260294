// Package jsonout provides the "json" output plugin, which dumps the resolved
// icon: seed, dimensions, colours and grid.
package jsonout

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/plugin/output/common"
)

// Document is the JSON written for each icon. Field names match the data
// sent to external plugins.
type Document struct {
	Seed      string  `json:"seed"`
	Size      int     `json:"size"`
	Scale     int     `json:"scale"`
	Width     int     `json:"width"`
	Color     string  `json:"color"`
	BgColor   string  `json:"bg_color"`
	SpotColor string  `json:"spot_color"`
	Grid      [][]int `json:"grid"`
}

// Plugin implements the output.Plugin interface for JSON dumps.
type Plugin struct {
	outputDir string
	baseName  string
	compact   bool
}

// New creates a new JSON output plugin with default settings.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "json"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Write the icon's seed, colours and grid as JSON"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "json.output-dir", "", "Output directory (default: current directory)")
	cmd.Flags().BoolVar(&p.compact, "json.compact", false, "Write compact JSON instead of indented")
}

// SetBaseName sets the file name stem.
// Implements the output.BaseNamer interface.
func (p *Plugin) SetBaseName(name string) {
	p.baseName = name
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Generate writes the icon as JSON.
func (p *Plugin) Generate(ic *icon.Icon) (map[string][]byte, error) {
	if ic == nil {
		return nil, fmt.Errorf("icon cannot be nil")
	}

	data := ic.Data()
	doc := Document{
		Seed:      data.Seed,
		Size:      data.Size,
		Scale:     data.Scale,
		Width:     data.Width(),
		Color:     data.Color,
		BgColor:   data.BgColor,
		SpotColor: data.SpotColor,
		Grid:      data.Grid,
	}

	var (
		content []byte
		err     error
	)
	if p.compact {
		content, err = json.Marshal(doc)
	} else {
		content, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal icon: %w", err)
	}

	return map[string][]byte{
		common.FileName(p.baseName, output.DefaultBaseName, ".json"): append(content, '\n'),
	}, nil
}
