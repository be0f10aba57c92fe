// Package version exposes the build version.
package version

// Overridden at build time via
// -ldflags "-X github.com/neox5/metricgen/internal/version.version=...".
var version = "0.1.0-dev"

// String returns the metricgen version.
func String() string {
	return version
}
