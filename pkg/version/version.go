// Package version reports the build version of accountdesk.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/rshade/accountdesk/pkg/version.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the version string, falling back to the module version
// recorded by `go install`.
func GetVersion() string {
	if version != "dev" && version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build date, if known.
func GetBuildDate() string {
	return buildDate
}

// String renders the full version line printed by `accountdesk version`.
func String() string {
	s := "accountdesk " + GetVersion()
	if gitCommit != "" {
		s += " (" + gitCommit + ")"
	}
	if buildDate != "" {
		s += " built " + buildDate
	}
	return fmt.Sprintf("%s %s/%s %s", s, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
