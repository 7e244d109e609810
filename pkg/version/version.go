// Package version exposes build-time version information for the panda CLI.
package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Info holds the version details reported by the version command.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the current build's version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the info as a single human-readable line.
func (i Info) String() string {
	return fmt.Sprintf("panda %s (commit %s, %s, %s)", i.Version, i.GitCommit, i.GoVersion, i.Platform)
}
