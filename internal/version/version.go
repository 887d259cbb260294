// Package version holds build metadata for blockies, injected at link time:
//
//	go build -ldflags "-X github.com/jmylchreest/blockies/internal/version.Version=x.y.z \
//	  -X github.com/jmylchreest/blockies/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/jmylchreest/blockies/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

const unknown = "unknown"

var (
	// Version is the semantic version of the application.
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = unknown

	// Date is the build date in RFC3339 format.
	Date = unknown

	// GoVersion is the Go version used to build the binary.
	GoVersion = runtime.Version()
)

// Info is the build metadata of the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build metadata of the running binary.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats the metadata on one line. Commit and date are left out
// of development builds.
func (i Info) String() string {
	if i.Commit == unknown || i.Date == unknown {
		return fmt.Sprintf("blockies version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}

	commit := i.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("blockies version %s (commit: %s, built: %s, %s, %s)",
		i.Version, commit, i.Date, i.GoVersion, i.Platform)
}

// String returns a human-readable version string.
func String() string {
	return GetInfo().String()
}

// Short returns a short version string suitable for CLI output.
func Short() string {
	return Version
}
