// Package security provides validation for data blockies receives from
// plugins and user-supplied files.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned by LimitedReader once its budget is spent.
var ErrSizeLimit = errors.New("size limit exceeded")

// ValidateFilePath checks that a file name returned by a plugin stays
// within baseDir once joined to it.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	if filepath.IsAbs(filePath) || strings.HasPrefix(filePath, "/") {
		return fmt.Errorf("absolute file paths are not allowed: %s", filePath)
	}

	for _, part := range strings.Split(filepath.ToSlash(filePath), "/") {
		if part == ".." {
			return fmt.Errorf("file path contains directory traversal (..): %s", filePath)
		}
	}

	cleanBase := filepath.Clean(baseDir)
	rel, err := filepath.Rel(cleanBase, filepath.Join(cleanBase, filePath))
	if err != nil || rel == "." {
		return fmt.Errorf("file path does not name a file: %s", filePath)
	}

	return nil
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitedReader it fails instead of reporting EOF at the limit.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
