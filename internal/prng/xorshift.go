// Package prng provides the seeded xorshift generator that drives identicon generation.
// It is tuned for visual reproducibility, not for security.
package prng

import "unicode/utf16"

// outputDivisor is 2^31. The unsigned state word is divided by it without
// normalising to the unit interval.
const outputDivisor = 1 << 31

// Source produces a stream of pseudo-random values.
// Colour and bitmap generation consume a Source rather than a concrete generator.
type Source interface {
	// Generate advances the generator and returns the next value in [0, 2).
	Generate() float64
}

// Xorshift is a four-word xorshift generator seeded from text.
// The zero value is a valid generator whose state is all zero and which
// therefore returns 0 forever.
type Xorshift struct {
	state [4]uint32 // x, y, z, w
}

// New returns a generator seeded with seed.
func New(seed string) *Xorshift {
	x := &Xorshift{}
	x.Seed(seed)
	return x
}

// Seed resets the state and folds each character code of text into it,
// cycling over the four words. Each word is updated as word*31 + code,
// wrapping at 32 bits. Character codes are UTF-16 code units.
func (x *Xorshift) Seed(text string) {
	x.state = [4]uint32{}
	for i, c := range utf16.Encode([]rune(text)) {
		x.state[i%4] = x.state[i%4]*31 + uint32(c)
	}
}

// Generate advances the state and returns w / 2^31.
// Right shifts are arithmetic shifts of the signed reading of each word.
func (x *Xorshift) Generate() float64 {
	s0 := int32(x.state[0]) // #nosec G115 -- reinterpreting the bit pattern is intended
	t := s0 ^ (s0 << 11)

	x.state[0] = x.state[1]
	x.state[1] = x.state[2]
	x.state[2] = x.state[3]

	w := int32(x.state[3]) // #nosec G115 -- reinterpreting the bit pattern is intended
	w = w ^ (w >> 19) ^ t ^ (t >> 8)
	x.state[3] = uint32(w) // #nosec G115 -- reinterpreting the bit pattern is intended

	return float64(x.state[3]) / outputDivisor
}

// State returns a copy of the current [x, y, z, w] words.
func (x *Xorshift) State() [4]uint32 {
	return x.state
}
