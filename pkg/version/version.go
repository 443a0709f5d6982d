// Package version carries the build version, set via ldflags at release
// time.
package version

// Version is the application version.
var Version = "0.3.0-dev"
