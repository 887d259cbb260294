// Package colour provides identicon colour selection, CSS colour parsing and
// terminal colour helpers.
package colour

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jmylchreest/blockies/internal/prng"
)

// DrawsPerColour is the number of values PickColour consumes from its source.
const DrawsPerColour = 6

// PickColour draws an HSL colour string of the form "hsl(H,S%,L%)" from src.
//
// Hue spans the whole wheel, saturation starts at 40 to avoid greyish colours
// and lightness is the sum of four draws, giving a bell curve around the
// source's mean. None of the components are clamped.
func PickColour(src prng.Source) string {
	h := math.Floor(src.Generate() * 360)
	s := src.Generate()*60 + 40
	l := (src.Generate() + src.Generate() + src.Generate() + src.Generate()) * 25

	return fmt.Sprintf("hsl(%s,%s%%,%s%%)", formatNumber(h), formatNumber(s), formatNumber(l))
}

// formatNumber renders v with the fewest digits that round-trip, without an exponent.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
