// Package common provides shared utilities for output plugins.
package common

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// NewLogger returns the logger a plugin uses for verbose output. It writes
// Debug and above to stderr when verbose is set and discards everything
// otherwise.
func NewLogger(pluginName string, verbose bool) hclog.Logger {
	return newLogger(pluginName, verbose, os.Stderr)
}

func newLogger(pluginName string, verbose bool, out io.Writer) hclog.Logger {
	if !verbose {
		return hclog.NewNullLogger()
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "blockies." + pluginName,
		Level:  hclog.Debug,
		Output: out,
	})
}
