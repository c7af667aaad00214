// Package version reports the build version of stride.
package version

import "runtime/debug"

// Build metadata, set with -ldflags "-X github.com/rshade/stride/pkg/version.version=...".
//
//nolint:gochecknoglobals // Set at link time
var (
	version = "dev"
	commit  = ""
)

// GetVersion returns the release version, or the module version recorded by
// `go install`, or "dev".
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// GetCommit returns the VCS revision the binary was built from, if known.
func GetCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}
