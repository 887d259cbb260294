package colour

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnsupportedColour is returned by Parse for strings it cannot interpret.
var ErrUnsupportedColour = errors.New("unsupported colour")

var (
	hslRegex = regexp.MustCompile(`^hsla?\(\s*([+-]?[0-9]*\.?[0-9]+)(?:deg)?\s*[,\s]\s*([+-]?[0-9]*\.?[0-9]+)%\s*[,\s]\s*([+-]?[0-9]*\.?[0-9]+)%\s*(?:[,/]\s*([0-9]*\.?[0-9]+%?)\s*)?\)$`)
	rgbRegex = regexp.MustCompile(`^rgba?\(\s*([+-]?[0-9]*\.?[0-9]+)\s*[,\s]\s*([+-]?[0-9]*\.?[0-9]+)\s*[,\s]\s*([+-]?[0-9]*\.?[0-9]+)\s*(?:[,/]\s*([0-9]*\.?[0-9]+%?)\s*)?\)$`)
	hexRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// Parse interprets a CSS colour string for raster output.
// Supports: hsl, hsla, rgb, rgba, #rgb, #rrggbb, #rrggbbaa and CSS named colours.
//
// Hue is wrapped onto the colour wheel and saturation and lightness are
// clamped to 0-100%, the way a browser paints out-of-range hsl() values.
func Parse(s string) (color.Color, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return nil, fmt.Errorf("%w: empty string", ErrUnsupportedColour)
	}

	if m := hslRegex.FindStringSubmatch(value); m != nil {
		// Regex guarantees these are valid floats, errors ignored
		h, _ := strconv.ParseFloat(m[1], 64) //nolint:errcheck
		sat, _ := strconv.ParseFloat(m[2], 64) //nolint:errcheck
		l, _ := strconv.ParseFloat(m[3], 64) //nolint:errcheck

		rgb := HSLToRGB(h, sat/100, l/100)
		return withAlpha(rgb, m[4]), nil
	}

	if m := rgbRegex.FindStringSubmatch(value); m != nil {
		// Regex guarantees these are valid floats, errors ignored
		r, _ := strconv.ParseFloat(m[1], 64) //nolint:errcheck
		g, _ := strconv.ParseFloat(m[2], 64) //nolint:errcheck
		b, _ := strconv.ParseFloat(m[3], 64) //nolint:errcheck

		rgb := RGB{R: channel(r), G: channel(g), B: channel(b)}
		return withAlpha(rgb, m[4]), nil
	}

	if m := hexRegex.FindStringSubmatch(value); m != nil {
		return parseHex(m[1])
	}

	if value == "transparent" {
		return color.NRGBA{}, nil
	}

	if named, ok := colornames.Map[value]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedColour, s)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) color.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHex parses the digits of a hex colour (without the leading #).
func parseHex(hex string) (color.Color, error) {
	// Expand shorthand format (RGB -> RRGGBB).
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}

	return color.NRGBA{
		R: uint8(v >> 24), // #nosec G115 -- 8-bit fields of a 32-bit value
		G: uint8(v >> 16), // #nosec G115 -- 8-bit fields of a 32-bit value
		B: uint8(v >> 8),  // #nosec G115 -- 8-bit fields of a 32-bit value
		A: uint8(v),       // #nosec G115 -- 8-bit fields of a 32-bit value
	}, nil
}

// channel clamps a 0-255 component and rounds it to a byte.
func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v)))) // #nosec G115 -- clamped to 0-255
}

// withAlpha applies an optional CSS alpha component ("0.5" or "50%").
func withAlpha(rgb RGB, alpha string) color.NRGBA {
	c := color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
	if alpha == "" {
		return c
	}

	percent := strings.HasSuffix(alpha, "%")
	a, err := strconv.ParseFloat(strings.TrimSuffix(alpha, "%"), 64)
	if err != nil {
		return c
	}
	if percent {
		a /= 100
	}
	c.A = toByte(a)
	return c
}
