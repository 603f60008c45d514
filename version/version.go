// Package version exposes build metadata set with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/compose/version.Version=1.2.0" ./cmd/compose-demo
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time.
var (
	Version   = "dev"
	GitCommit = ""
)

// String renders the version, appending the short commit when known. The
// commit falls back to the VCS revision recorded by the Go toolchain.
func String() string {
	commit := GitCommit
	if commit == "" {
		commit = vcsRevision()
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
