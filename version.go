package id3scan

import "runtime"

// Version is the semantic version of the id3scan library.
const Version = "0.3.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.3.0")
	Version string
	// GitCommit is the git commit hash (set via ldflags at build time)
	GitCommit string
	// BuildTime is the build timestamp (set via ldflags at build time)
	BuildTime string
	// GoVersion is the Go version used to build
	GoVersion string
}

// GetVersionInfo returns detailed version information
//
// GitCommit and BuildTime are populated at build time via -ldflags and show
// as "unknown" otherwise. GoVersion falls back to the running toolchain.
//
// Example build command:
//
//	go build -ldflags="-X github.com/simonhull/id3scan.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/id3scan.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/id3scan
func GetVersionInfo() VersionInfo {
	goVer := goVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}

	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVer,
	}
}

// String formats the version for a -version flag.
func (v VersionInfo) String() string {
	return "id3scan " + v.Version + " (commit " + v.GitCommit + ", built " + v.BuildTime + ", " + v.GoVersion + ")"
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)
