// Package buildinfo holds build metadata injected at link time via -ldflags.
package buildinfo

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
