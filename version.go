/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package xviz

import (
	"fmt"
	"runtime"
)

// Build metadata, overridden with -ldflags "-X github.com/rohankumardubey/xviz.GitCommit=..."
var (
	// Version is the semantic version of the object store
	Version = "0.1.0"

	GitCommit = "unknown"

	BuildDate = "unknown"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// String renders the version on one line.
func (v VersionInfo) String() string {
	return fmt.Sprintf("xviz %s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildDate, v.GoVersion)
}

// GetVersionInfo returns the version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}
