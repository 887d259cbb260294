package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/jmylchreest/blockies/internal/colour"
)

// ANSI paints into a pixel buffer and prints it with 24-bit terminal colour,
// two pixel rows per text line using upper half blocks.
type ANSI struct {
	pixels [][]colour.RGB
	set    [][]bool
	colors palette
}

// NewANSI creates a width x width terminal surface. Use an icon scale of 1
// to get one character column per cell.
func NewANSI(width int) (*ANSI, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}

	pixels := make([][]colour.RGB, width)
	set := make([][]bool, width)
	for y := range width {
		pixels[y] = make([]colour.RGB, width)
		set[y] = make([]bool, width)
	}

	return &ANSI{pixels: pixels, set: set, colors: make(palette)}, nil
}

// FillAll paints every pixel.
func (a *ANSI) FillAll(c string) error {
	return a.FillRect(0, 0, len(a.pixels), len(a.pixels), c)
}

// FillRect paints the w x h block at (x, y), clipped to the surface.
func (a *ANSI) FillRect(x, y, w, h int, c string) error {
	col, err := a.colors.lookup(c)
	if err != nil {
		return err
	}

	// Transparent fills leave the terminal background showing.
	if _, _, _, alpha := col.RGBA(); alpha == 0 {
		return nil
	}
	rgb := colour.ToRGB(opaque(col))

	width := len(a.pixels)
	rect := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, width, width))
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			a.pixels[py][px] = rgb
			a.set[py][px] = true
		}
	}
	return nil
}

// String returns the rendered icon, one line per two pixel rows.
func (a *ANSI) String() string {
	var b strings.Builder
	width := len(a.pixels)

	for y := 0; y < width; y += 2 {
		for x := range width {
			top, topSet := a.pixels[y][x], a.set[y][x]
			bottomSet := y+1 < width && a.set[y+1][x]

			switch {
			case topSet && bottomSet:
				b.WriteString(colour.HalfBlock(top, a.pixels[y+1][x]))
			case topSet:
				b.WriteString(colour.Foreground(top) + colour.UpperHalfBlock)
			case bottomSet:
				b.WriteString(colour.Foreground(a.pixels[y+1][x]) + colour.LowerHalfBlock)
			default:
				b.WriteByte(' ')
			}
			b.WriteString(colour.Reset())
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// opaque drops the alpha channel without premultiplying.
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}
