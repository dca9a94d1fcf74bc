// Package version carries the build metadata stamped with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()               // go version
)

// Info is the build metadata reported by /healthz and logged at startup.
type Info struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Get returns the metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
	}
}

// String formats the metadata for logs.
func (i Info) String() string {
	return fmt.Sprintf("secdash %s (commit=%s, built=%s, go=%s)", i.Version, i.Commit, i.BuildDate, i.GoVersion)
}
