// Package icon assembles identicons: it resolves options, seeds one generator
// per icon, picks colours, builds the bitmap and drives a rendering surface.
package icon

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blockies/internal/bitmap"
	"github.com/jmylchreest/blockies/internal/colour"
	"github.com/jmylchreest/blockies/internal/prng"
)

const (
	// DefaultSize is the number of cells per side when Options.Size is zero.
	DefaultSize = 8

	// DefaultScale is the number of pixels per cell when Options.Scale is zero.
	DefaultScale = 4
)

var (
	// ErrInvalidSize is returned for a negative size.
	ErrInvalidSize = errors.New("icon size must be positive")

	// ErrInvalidScale is returned for a negative scale.
	ErrInvalidScale = errors.New("icon scale must be positive")
)

// Options controls icon generation. Zero values select defaults.
type Options struct {
	// Size is the number of cells per side. Zero selects DefaultSize.
	Size int

	// Scale is the number of pixels per cell. Zero selects DefaultScale.
	Scale int

	// Seed is the text the icon is derived from. Nil means no seed: one is
	// synthesised and the icon is not reproducible. An empty string is a seed.
	Seed *string

	// Color, BgColor and SpotColor are passed through unmodified when set.
	// Empty values are generated from the seed, in that order.
	Color     string
	BgColor   string
	SpotColor string
}

// Seed returns a pointer to s, for use in Options.
func Seed(s string) *string {
	return &s
}

// Icon is a fully resolved identicon. Together with a renderer it determines
// the output image.
type Icon struct {
	Seed      string
	Size      int
	Scale     int
	Grid      bitmap.Grid
	Color     string
	BgColor   string
	SpotColor string
}

// Width returns the edge length of the rendered icon in pixels.
func (ic *Icon) Width() int {
	return ic.Size * ic.Scale
}

// Generator builds icons. It holds no mutable state and is safe for
// concurrent use; every Build owns its own random generator.
type Generator struct {
	entropy EntropySource
	logger  hclog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithEntropy sets the source used to synthesise missing seeds.
func WithEntropy(e EntropySource) GeneratorOption {
	return func(g *Generator) {
		g.entropy = e
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l hclog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator creates a Generator. Without options it uses crypto/rand for
// missing seeds and discards log output.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		entropy: CryptoEntropy{},
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// Build creates an icon with the default generator.
func Build(opts Options) (*Icon, error) {
	return defaultGenerator.Build(opts)
}

// Build resolves opts and generates the icon.
//
// The generator is seeded once, then any missing colours are drawn in the
// order colour, background, spot, and the bitmap is built last. Supplying a
// colour skips its draws without changing the order of the rest.
func (g *Generator) Build(opts Options) (*Icon, error) {
	size, scale, err := resolveDimensions(opts)
	if err != nil {
		return nil, err
	}

	seed, err := g.resolveSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	rng := prng.New(seed)

	ic := &Icon{
		Seed:      seed,
		Size:      size,
		Scale:     scale,
		Color:     resolveColour(opts.Color, rng),
		BgColor:   resolveColour(opts.BgColor, rng),
		SpotColor: resolveColour(opts.SpotColor, rng),
	}

	ic.Grid, err = bitmap.Build(rng, size)
	if err != nil {
		return nil, fmt.Errorf("failed to build bitmap: %w", err)
	}

	g.logger.Debug("built icon",
		"seed", seed,
		"size", size,
		"scale", scale,
		"color", ic.Color,
		"bg_color", ic.BgColor,
		"spot_color", ic.SpotColor)

	return ic, nil
}

// resolveDimensions applies defaults to size and scale and rejects negatives.
func resolveDimensions(opts Options) (size, scale int, err error) {
	size, scale = opts.Size, opts.Scale
	if size == 0 {
		size = DefaultSize
	}
	if scale == 0 {
		scale = DefaultScale
	}

	if size < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if scale < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}
	return size, scale, nil
}

// resolveSeed returns the supplied seed or synthesises one.
func (g *Generator) resolveSeed(seed *string) (string, error) {
	if seed != nil {
		return *seed, nil
	}

	if g.entropy == nil {
		return "", fmt.Errorf("%w: no entropy source configured", ErrEntropyUnavailable)
	}

	text, err := g.entropy.SeedText()
	if err != nil {
		return "", fmt.Errorf("failed to synthesise seed: %w", err)
	}

	g.logger.Debug("synthesised seed", "seed", text)
	return text, nil
}

// resolveColour returns c, or a colour picked from src when c is empty.
func resolveColour(c string, src prng.Source) string {
	if c != "" {
		return c
	}
	return colour.PickColour(src)
}
