// Package version holds the labctl version, set at build time via ldflags.
package version

// Version is the labctl release version. Overridden at build time:
//
//	go build -ldflags "-X github.com/workshoplabs/labctl/pkg/version.Version=v1.2.3"
var Version = "0.0.0-dev"
