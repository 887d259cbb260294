// Package svg provides an output plugin writing identicons as SVG documents.
package svg

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/plugin/output/common"
	"github.com/jmylchreest/blockies/internal/render"
)

// Plugin implements the output.Plugin interface for SVG documents.
type Plugin struct {
	outputDir string
	baseName  string
	noTitle   bool
}

// New creates a new SVG output plugin with default settings.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "svg"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render the identicon as an SVG document"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "svg.output-dir", "", "Output directory (default: current directory)")
	cmd.Flags().BoolVar(&p.noTitle, "svg.no-title", false, "Omit the <title> element carrying the seed")
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

// Generate renders the icon to SVG. Colour strings are written verbatim.
func (p *Plugin) Generate(ic *icon.Icon) (map[string][]byte, error) {
	if ic == nil {
		return nil, fmt.Errorf("icon cannot be nil")
	}

	var buf bytes.Buffer
	doc, err := render.NewSVG(&buf, ic.Width())
	if err != nil {
		return nil, err
	}
	if !p.noTitle {
		doc.SetTitle(ic.Seed)
	}
	if err := ic.Render(doc); err != nil {
		return nil, fmt.Errorf("failed to render icon: %w", err)
	}
	if err := doc.Close(); err != nil {
		return nil, err
	}

	return map[string][]byte{
		common.FileName(p.baseName, output.DefaultBaseName, ".svg"): buf.Bytes(),
	}, nil
}
