// Package version holds build metadata for filterstate.
package version

import "runtime"

// Set at build time with -ldflags "-X github.com/ocp-advisor/filterstate/internal/version.Version=...".
var (
	Version = "development"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the structured form printed by `filterstate version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// String returns the version, suffixed with the commit when known.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}

// Get collects the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}
