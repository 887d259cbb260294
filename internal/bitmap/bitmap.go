// Package bitmap builds the horizontally mirrored cell grid of an identicon.
package bitmap

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/jmylchreest/blockies/internal/prng"
)

// Cell values with a fixed meaning. Any other positive value is painted
// with the spot colour.
const (
	Background = 0
	Foreground = 1
	Spot       = 2
)

// cellSpread scales a generator value into a cell value. With values below 1
// this gives background and foreground about 43% each and spot about 13%.
const cellSpread = 2.3

// ErrInvalidSize is returned when a grid of non-positive size is requested.
var ErrInvalidSize = errors.New("grid size must be positive")

// Grid is a square matrix of cell values, indexed [row][col].
type Grid [][]int

// DataWidth returns the number of drawn cells per row: ceil(size/2).
func DataWidth(size int) int {
	return (size + 1) / 2
}

// MirrorWidth returns the number of reflected cells per row: size - DataWidth(size).
func MirrorWidth(size int) int {
	return size - DataWidth(size)
}

// Build draws a size x size grid from src.
//
// Each row draws DataWidth cells, then appends its first MirrorWidth cells in
// reverse. For odd sizes the middle column is drawn and never reflected.
// Rows are independent; there is no vertical symmetry.
func Build(src prng.Source, size int) (Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	dataWidth := DataWidth(size)
	mirrorWidth := MirrorWidth(size)

	grid := make(Grid, size)
	for y := range size {
		row := make([]int, dataWidth, size)
		for x := range dataWidth {
			row[x] = int(math.Floor(src.Generate() * cellSpread))
		}

		mirrored := slices.Clone(row[:mirrorWidth])
		slices.Reverse(mirrored)
		grid[y] = append(row, mirrored...)
	}

	return grid, nil
}

// Size returns the number of rows (and columns) in the grid.
func (g Grid) Size() int {
	return len(g)
}

// IsMirrored reports whether every row's last MirrorWidth cells are the
// reverse of its first MirrorWidth cells.
func (g Grid) IsMirrored() bool {
	size := g.Size()
	mirrorWidth := MirrorWidth(size)
	for _, row := range g {
		if len(row) != size {
			return false
		}
		for i := range mirrorWidth {
			if row[i] != row[size-1-i] {
				return false
			}
		}
	}
	return true
}

// Equal reports whether two grids hold the same cells.
func (g Grid) Equal(other Grid) bool {
	return slices.EqualFunc(g, other, func(a, b []int) bool {
		return slices.Equal(a, b)
	})
}

// String renders the grid as text: '.' background, '#' foreground, '*' spot.
func (g Grid) String() string {
	var b strings.Builder
	for _, row := range g {
		for _, v := range row {
			switch v {
			case Background:
				b.WriteByte('.')
			case Foreground:
				b.WriteByte('#')
			default:
				b.WriteByte('*')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
