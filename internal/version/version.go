package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/staticrender/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by sr --version. When Version was not
// set at link time the module version from the embedded build info is used.
func String() string {
	v := Version
	if v == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			v = info.Main.Version
		}
	}
	return fmt.Sprintf("sr %s (commit %s, built %s)", v, GitCommit, BuildTime)
}
