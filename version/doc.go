// Package version provides build version information for parakit.
//
// Version, git commit, and build time are set at compile time via
// -ldflags:
//
//	go build -ldflags "-X github.com/parakit/parakit/version.Version=1.0.0"
//
// When ldflags are absent, values are recovered from the embedded VCS
// build info where available.
package version
