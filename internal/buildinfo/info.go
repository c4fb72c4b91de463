// Package buildinfo carries release metadata stamped in with -ldflags -X.
package buildinfo

import "fmt"

// Set by the release build; defaults identify a local build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata for --version output.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
