package colour

import (
	"fmt"
	"image/color"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8

	// UpperHalfBlock paints the top half of a cell in the foreground colour
	// and the bottom half in the background colour.
	UpperHalfBlock = "▀"

	// LowerHalfBlock paints only the bottom half of a cell.
	LowerHalfBlock = "▄"
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	block := strings.Repeat(" ", width)

	return Background(c) + block + ansiReset
}

// FormatColourWithLabel formats a colour with a label and preview.
func FormatColourWithLabel(c color.Color, label string, width int) string {
	rgb := ToRGB(c)
	return fmt.Sprintf("%s  %-20s %s", ColourPreview(rgb, width), label, rgb.Hex())
}

// Foreground returns the 24-bit escape sequence selecting c as foreground colour.
func Foreground(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}

// Background returns the 24-bit escape sequence selecting c as background colour.
func Background(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

// HalfBlock renders two vertically stacked pixels as one terminal cell.
func HalfBlock(top, bottom RGB) string {
	return Foreground(top) + Background(bottom) + UpperHalfBlock
}

// Reset returns the escape sequence restoring default terminal colours.
func Reset() string {
	return ansiReset
}
