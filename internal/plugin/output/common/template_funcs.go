package common

import (
	"strings"
	"text/template"

	"github.com/jmylchreest/blockies/internal/colour"
)

// lightThreshold is the relative luminance above which dark text reads better.
const lightThreshold = 0.179

// TemplateFuncs returns standard template functions for output plugin templates.
// Colour functions accept any string colour.Parse understands, including the
// hsl() strings generated icons carry.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Format conversion.
		"hex":       hexFunc,
		"hexNoHash": hexNoHashFunc,
		"rgb":       rgbFunc,

		// Contrast helpers.
		"isLight":    isLightFunc,
		"textColour": textColourFunc,

		// String manipulation (custom wrappers for pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

func parseRGB(s string) (colour.RGB, error) {
	c, err := colour.Parse(s)
	if err != nil {
		return colour.RGB{}, err
	}
	return colour.ToRGB(c), nil
}

// hexFunc returns a colour in #rrggbb format.
func hexFunc(s string) (string, error) {
	rgb, err := parseRGB(s)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// hexNoHashFunc returns a colour in rrggbb format (no # prefix).
func hexNoHashFunc(s string) (string, error) {
	hex, err := hexFunc(s)
	return strings.TrimPrefix(hex, "#"), err
}

// rgbFunc returns a colour in CSS rgb(r, g, b) format.
func rgbFunc(s string) (string, error) {
	rgb, err := parseRGB(s)
	if err != nil {
		return "", err
	}
	return rgb.String(), nil
}

// isLightFunc reports whether a colour is light enough to need dark text.
func isLightFunc(s string) (bool, error) {
	c, err := colour.Parse(s)
	if err != nil {
		return false, err
	}
	return colour.Luminance(c) > lightThreshold, nil
}

// textColourFunc returns black or white, whichever contrasts more with s.
func textColourFunc(s string) (string, error) {
	light, err := isLightFunc(s)
	if err != nil {
		return "", err
	}
	if light {
		return "#000000", nil
	}
	return "#ffffff", nil
}

// trimPrefixFunc removes a prefix from a string (pipe-friendly argument order).
// Unlike strings.TrimPrefix, this takes prefix first so it works in pipes:
//
//	{{ value | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// trimSuffixFunc removes a suffix from a string (pipe-friendly argument order).
func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order):
//
//	{{ value | replace "_" "-" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
