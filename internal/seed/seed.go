// Package seed derives identicon seed text from user input: literal text,
// a file's location or a file's content.
package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// Mode determines how the seed text is produced.
type Mode string

const (
	// ModeManual uses the supplied text as the seed (default).
	ModeManual Mode = "manual"
	// ModeRandom leaves the seed unset so one is synthesised per icon.
	ModeRandom Mode = "random"
	// ModeFilepath uses the absolute path of a file (deterministic by location).
	ModeFilepath Mode = "filepath"
	// ModeContent uses the SHA-256 of a file's bytes (deterministic by content).
	ModeContent Mode = "content"
)

// Config holds configuration for seed derivation.
type Config struct {
	Mode  Mode    // Seed mode
	Value *string // Seed text (only used when Mode is ModeManual)
	Path  string  // File (used by ModeFilepath and ModeContent)
}

// Calculate returns the seed text for config. A nil result means no seed:
// the icon generator synthesises one.
func Calculate(config Config) (*string, error) {
	switch config.Mode {
	case ModeManual, "":
		if config.Value == nil {
			return nil, fmt.Errorf("seed value is required for manual seed mode")
		}
		return config.Value, nil
	case ModeRandom:
		return nil, nil
	case ModeFilepath:
		if config.Path == "" {
			return nil, fmt.Errorf("file path is required for filepath seed mode")
		}
		s := FilepathSeed(config.Path)
		return &s, nil
	case ModeContent:
		if config.Path == "" {
			return nil, fmt.Errorf("file path is required for content seed mode")
		}
		s, err := fileContentSeed(config.Path)
		if err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// FilepathSeed returns the absolute form of path.
func FilepathSeed(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// ContentSeed returns the lowercase hex SHA-256 of everything read from r.
func ContentSeed(r io.Reader) (string, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", fmt.Errorf("failed to hash seed content: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func fileContentSeed(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user input by design
	if err != nil {
		return "", fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return ContentSeed(f)
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeManual, ModeRandom, ModeFilepath, ModeContent}
}

// ParseMode converts a string to a Mode.
// Returns an error if the string is not a valid mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: manual, random, filepath, content)", s)
}
