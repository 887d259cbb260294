// Package render provides the surfaces identicons are painted on: an in-memory
// raster for PNG output, an SVG writer and a terminal preview.
//
// Every surface implements icon.Surface. Colour strings are interpreted by
// colour.Parse, except by the SVG surface which writes them unchanged.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/jmylchreest/blockies/internal/colour"
)

// ErrInvalidWidth is returned when a surface is created with a non-positive width.
var ErrInvalidWidth = errors.New("surface width must be positive")

// palette caches parsed colour strings. An icon uses at most three colours.
type palette map[string]color.Color

func (p palette) lookup(s string) (color.Color, error) {
	if c, ok := p[s]; ok {
		return c, nil
	}

	c, err := colour.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("cannot paint %q: %w", s, err)
	}
	p[s] = c
	return c, nil
}

func checkWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return nil
}
