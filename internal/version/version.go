// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X harumnesia/internal/version.Version=1.2.0 -X harumnesia/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)
