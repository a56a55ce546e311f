// Package version holds build information for a termkit program and the
// cobra command that prints it.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Info holds version information. Version, BuildDate and GitCommit are
// normally set with -ldflags at build time.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
}

// New creates an Info with placeholder values for the named program.
func New(name string) *Info {
	return &Info{
		Name:      name,
		Version:   "0.0.0-dev",
		BuildDate: "unknown",
		GitCommit: "unknown",
		GoVersion: runtime.Version(),
	}
}

// FromBuildInfo fills placeholder fields from the VCS stamp the go tool
// embeds in the binary. Fields already set by ldflags are kept.
func (i *Info) FromBuildInfo() *Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	if i.Version == "0.0.0-dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "unknown" {
				i.GitCommit = s.Value
			}
		case "vcs.time":
			if i.BuildDate == "unknown" {
				i.BuildDate = s.Value
			}
		}
	}
	return i
}

// String returns a human-readable version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", i.Name, i.Version, i.GitCommit, i.BuildDate)
}
