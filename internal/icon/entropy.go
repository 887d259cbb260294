package icon

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrEntropyUnavailable is returned when no seed was supplied and none could
// be synthesised. A fixed fallback seed would make every unseeded icon identical.
var ErrEntropyUnavailable = errors.New("entropy source unavailable")

// seedSpace is the exclusive upper bound of synthesised seed integers (10^16).
var seedSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil)

// EntropySource synthesises seed text for icons built without a seed.
type EntropySource interface {
	SeedText() (string, error)
}

// CryptoEntropy draws seeds from a cryptographically secure reader.
// The result is a uniform integer below 10^16 written in base 16.
type CryptoEntropy struct {
	// Reader defaults to crypto/rand.Reader when nil.
	Reader io.Reader
}

// SeedText returns a fresh, non-reproducible seed.
func (e CryptoEntropy) SeedText() (string, error) {
	reader := e.Reader
	if reader == nil {
		reader = rand.Reader
	}

	n, err := rand.Int(reader, seedSpace)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	return n.Text(16), nil
}
