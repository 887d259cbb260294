// Package html provides an output plugin writing a preview page for an
// identicon: the icon inlined as SVG plus its colours. The page comes from
// a template users can override.
package html

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/output"
	"github.com/jmylchreest/blockies/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/blockies/internal/plugin/output/template"
	"github.com/jmylchreest/blockies/internal/render"
)

const (
	templateName       = "identicon.html.tmpl"
	defaultDisplaySize = 256
)

//go:embed *.tmpl
var templates embed.FS

// GetEmbeddedTemplates returns the embedded template filesystem.
// This is used by the template management commands.
func GetEmbeddedTemplates() embed.FS {
	return templates
}

// Swatch is one labelled colour on the page.
type Swatch struct {
	Role  string
	Value string
}

// PageData is the value the page template executes with.
type PageData struct {
	Icon        *icon.Icon
	SVG         htmltemplate.HTML
	DisplaySize int
	Swatches    []Swatch
}

// Plugin implements the output.Plugin interface for HTML preview pages.
type Plugin struct {
	outputDir   string
	baseName    string
	displaySize int
	customBase  string
	logger      hclog.Logger
}

// New creates a new HTML output plugin with default settings.
func New() *Plugin {
	return &Plugin{
		displaySize: defaultDisplaySize,
		logger:      hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "html"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Write an HTML preview page with the icon and its colours"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "html.output-dir", "", "Output directory (default: current directory)")
	cmd.Flags().IntVar(&p.displaySize, "html.display-size", defaultDisplaySize, "Edge length the icon is shown at, in CSS pixels")
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
	if p.displaySize <= 0 {
		return fmt.Errorf("--html.display-size must be positive: %d", p.displaySize)
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

// Loader returns the template loader the plugin reads its page from.
func (p *Plugin) Loader() *tmplloader.Loader {
	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	if p.customBase != "" {
		loader.WithCustomBase(p.customBase)
	}
	return loader
}

// Generate renders the preview page.
func (p *Plugin) Generate(ic *icon.Icon) (map[string][]byte, error) {
	if ic == nil {
		return nil, fmt.Errorf("icon cannot be nil")
	}

	tmplContent, fromCustom, err := p.Loader().Load(templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to read page template: %w", err)
	}
	if fromCustom {
		p.logger.Info("using custom template", "name", templateName)
	}

	tmpl, err := htmltemplate.New("page").
		Funcs(htmltemplate.FuncMap(common.TemplateFuncs())).
		Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	data, err := p.preparePageData(ic)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}

	return map[string][]byte{
		common.FileName(p.baseName, output.DefaultBaseName, ".html"): buf.Bytes(),
	}, nil
}

// preparePageData renders the inline SVG and collects the colours.
func (p *Plugin) preparePageData(ic *icon.Icon) (*PageData, error) {
	var svg bytes.Buffer
	doc, err := render.NewSVG(&svg, ic.Width())
	if err != nil {
		return nil, err
	}
	if err := ic.Render(doc); err != nil {
		return nil, fmt.Errorf("failed to render icon: %w", err)
	}
	if err := doc.Close(); err != nil {
		return nil, err
	}

	// Inline SVG needs no XML prolog.
	inline := svg.String()
	if i := strings.Index(inline, "<svg"); i > 0 {
		inline = inline[i:]
	}

	return &PageData{
		Icon: ic,
		// The document comes from our own renderer, which escapes attribute values.
		SVG:         htmltemplate.HTML(inline), // #nosec G203
		DisplaySize: p.displaySize,
		Swatches: []Swatch{
			{Role: "color", Value: ic.Color},
			{Role: "bgcolor", Value: ic.BgColor},
			{Role: "spotcolor", Value: ic.SpotColor},
		},
	}, nil
}
