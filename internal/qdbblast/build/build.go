// Package build holds build metadata, injected at link time via
// -ldflags "-X github.com/qdbblast/qdbblast/internal/qdbblast/build.ReleaseVersion=...".
package build

import "runtime"

var (
	ReleaseVersion = "0.2.0-dev"
	GitCommit      = "unknown"
	BuildTime      = "unknown"
	GoVersion      = runtime.Version()
)
