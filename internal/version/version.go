// Package version holds build metadata for polycue, injected with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/polycue/internal/version.Version=1.2.3 \
//	  -X github.com/jmylchreest/polycue/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/jmylchreest/polycue/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"encoding/json"
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
)

// Info holds all version information for the application.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns all version information as a structured type.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	if i.Commit != unknown && i.Date != unknown {
		return fmt.Sprintf("polycue version %s (commit: %s, built: %s, %s, %s)",
			i.Version, shortCommit(i.Commit), i.Date, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("polycue version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
}

// JSON returns the version information as indented JSON.
func (i Info) JSON() ([]byte, error) {
	return json.MarshalIndent(i, "", "  ")
}

// String returns the human-readable version of the running binary.
func String() string {
	return GetInfo().String()
}

// Short returns a short version string suitable for CLI output.
func Short() string {
	return Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
