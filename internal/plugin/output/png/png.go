// Package png provides an output plugin writing identicons as PNG images.
package png

import (
	"bytes"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/plugin/output/common"
	"github.com/jmylchreest/blockies/internal/render"
)

// Plugin implements the output.Plugin interface for PNG images.
type Plugin struct {
	outputDir string
	baseName  string
	pixels    int
	logger    hclog.Logger
}

// New creates a new PNG output plugin with default settings.
func New() *Plugin {
	return &Plugin{
		logger: hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "png"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render the identicon as a PNG image"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "png.output-dir", "", "Output directory (default: current directory)")
	cmd.Flags().IntVar(&p.pixels, "png.pixels", 0, "Final edge length in pixels, a multiple of size*scale (default: size*scale)")
}

// SetVerbose enables or disables verbose logging for the plugin.
// Implements the output.VerbosePlugin interface.
func (p *Plugin) SetVerbose(verbose bool) {
	p.logger = common.NewLogger(p.Name(), verbose)
}

// SetBaseName sets the file name stem.
// Implements the output.BaseNamer interface.
func (p *Plugin) SetBaseName(name string) {
	p.baseName = name
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.pixels < 0 {
		return fmt.Errorf("--png.pixels must not be negative: %d", p.pixels)
	}
	return nil
}

// DefaultOutputDir returns the output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Generate renders the icon to PNG.
// Returns map of filename -> content
func (p *Plugin) Generate(ic *icon.Icon) (map[string][]byte, error) {
	if ic == nil {
		return nil, fmt.Errorf("icon cannot be nil")
	}

	raster, err := render.NewRaster(ic.Width())
	if err != nil {
		return nil, err
	}
	if err := ic.Render(raster); err != nil {
		return nil, fmt.Errorf("failed to render icon: %w", err)
	}

	var img image.Image = raster.Image()
	if p.pixels > 0 {
		img, err = raster.Upscale(p.pixels)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("upscaled icon", "from", ic.Width(), "to", p.pixels)
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}

	return map[string][]byte{
		common.FileName(p.baseName, output.DefaultBaseName, ".png"): buf.Bytes(),
	}, nil
}
