// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X agrisense/internal/version.Version=...".
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the build information for display.
func String() string {
	return fmt.Sprintf("agrisense %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
