// File: internal/version/version.go (complete file)

package version

import "fmt"

// These values are intended to be set at build time using -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func String() string {
	return fmt.Sprintf("netdiag %s (commit=%s build_date=%s)", Version, Commit, BuildDate)
}
