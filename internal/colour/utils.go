package colour

import (
	"image/color"
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	// Convert from 16-bit to 8-bit.
	rf := float64(r>>8) / 255.0
	rg := float64(g>>8) / 255.0
	rb := float64(b>>8) / 255.0

	// Apply gamma correction.
	rf = gammaCorrect(rf)
	rg = gammaCorrect(rg)
	rb = gammaCorrect(rb)

	return 0.2126*rf + 0.7152*rg + 0.0722*rb
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// HSLToRGB converts HSL to RGB colour space.
// h is hue in degrees and may lie outside 0-360, it is wrapped onto the wheel.
// s is saturation (0-1), l is lightness (0-1); both are clamped.
func HSLToRGB(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clampUnit(s)
	l = clampUnit(l)

	if s == 0 {
		// Achromatic (grey).
		v := toByte(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: toByte(hueToRGB(p, q, h+120)),
		G: toByte(hueToRGB(p, q, h)),
		B: toByte(hueToRGB(p, q, h-120)),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	// Normalize t to 0-360 range.
	for t < 0 {
		t += 360
	}
	for t >= 360 {
		t -= 360
	}

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// clampUnit restricts v to [0, 1].
func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// toByte maps a unit value onto 0-255 with rounding.
func toByte(v float64) uint8 {
	return uint8(math.Round(clampUnit(v) * 255)) // #nosec G115 -- clamped to 0-255
}
