// Package version holds the application version string, set at build time
// via -ldflags "-X .../internal/version.Version=...".
package version

// Version is the application version. Overridden at build time.
var Version = "dev"
