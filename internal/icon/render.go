package icon

import (
	"fmt"

	"github.com/jmylchreest/blockies/internal/bitmap"
	"github.com/jmylchreest/blockies/pkg/plugin"
)

// Surface is the raster target an icon is painted on.
// Colours are the icon's strings, passed through unmodified.
type Surface interface {
	// FillAll paints the whole surface.
	FillAll(colour string) error

	// FillRect paints the w x h block whose top-left pixel is (x, y).
	FillRect(x, y, w, h int, colour string) error
}

// Render paints ic on s: the background first, then one scale x scale block
// per non-background cell, in the foreground colour for 1 and the spot colour
// for anything else. The surface must be Width() pixels per side.
func (ic *Icon) Render(s Surface) error {
	if err := s.FillAll(ic.BgColor); err != nil {
		return fmt.Errorf("failed to fill background: %w", err)
	}

	for row, cells := range ic.Grid {
		for col, v := range cells {
			if v == bitmap.Background {
				continue
			}

			fill := ic.SpotColor
			if v == bitmap.Foreground {
				fill = ic.Color
			}

			if err := s.FillRect(col*ic.Scale, row*ic.Scale, ic.Scale, ic.Scale, fill); err != nil {
				return fmt.Errorf("failed to fill cell (%d, %d): %w", row, col, err)
			}
		}
	}

	return nil
}

// Data converts the icon to the type shared with external renderer plugins.
func (ic *Icon) Data() plugin.IconData {
	grid := make([][]int, len(ic.Grid))
	for i, row := range ic.Grid {
		grid[i] = append([]int(nil), row...)
	}

	return plugin.IconData{
		Seed:      ic.Seed,
		Size:      ic.Size,
		Scale:     ic.Scale,
		Grid:      grid,
		Color:     ic.Color,
		BgColor:   ic.BgColor,
		SpotColor: ic.SpotColor,
	}
}
