package version // import "github.com/bookverse/bookverse/version"

import (
	"golang.org/x/mod/semver"
)

// Version is the current server version. Bump when the schema changes so
// the migrator picks up the new migration directory.
var Version = "0.2.1"

func GetCurrentVersion() string {
	return Version
}

// IsVersionGreaterOrEqualThan returns true if version is greater than or equal to target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare("v"+version, "v"+target) >= 0
}
