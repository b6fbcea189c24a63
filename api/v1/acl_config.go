package v1

import (
	"net/http"
	"regexp"

	"github.com/bookverse/bookverse/util"
)

var authenticationAllowlist = map[string]bool{
	"/api/v1/signup":                 true,
	"/api/v1/signin":                 true,
	"/api/v1/password-reset/request": true,
	"/api/v1/password-reset/confirm": true,
}

// Read-only catalog endpoints stay reachable without a token.
var publicGetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/api/v1/books$`),
	regexp.MustCompile(`^/api/v1/books/[0-9]+$`),
	regexp.MustCompile(`^/api/v1/books/[0-9]+/reviews$`),
	regexp.MustCompile(`^/api/v1/reviews/recent$`),
}

// isUnauthorizeAllowed returns whether the request is exempted from authentication.
func isUnauthorizeAllowed(r *http.Request) bool {
	if authenticationAllowlist[r.URL.Path] {
		return true
	}
	if r.Method != http.MethodGet {
		return false
	}
	for _, pattern := range publicGetPatterns {
		if pattern.MatchString(r.URL.Path) {
			return true
		}
	}
	return false
}

// User administration lives under /api/v1/users.
var adminOnlyPathPrefixes = []string{
	"/api/v1/users",
}

// isOnlyForAdminAllowedPath returns true if the path is allowed to be called only by admin.
func isOnlyForAdminAllowedPath(path string) bool {
	return util.HasPrefixes(path, adminOnlyPathPrefixes...)
}
