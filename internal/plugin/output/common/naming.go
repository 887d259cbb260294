package common

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxBaseNameLen bounds generated file name stems.
const maxBaseNameLen = 64

// SanitiseBaseName turns arbitrary seed text into a file name stem: runs of
// characters outside letters, digits, '.', '-' and '_' collapse into one '-',
// leading and trailing separators are dropped and the result is truncated.
// It returns fallback when nothing usable remains.
func SanitiseBaseName(s, fallback string) string {
	var b strings.Builder
	dash := false

	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
		if b.Len() >= maxBaseNameLen {
			break
		}
	}

	name := strings.Trim(b.String(), "-.")
	if name == "" {
		return fallback
	}
	return name
}

// FileName joins a base name and extension, falling back to fallback when
// base is empty. Any directory components in base are dropped.
func FileName(base, fallback, ext string) string {
	if base == "" {
		base = fallback
	}
	return filepath.Base(base) + ext
}
