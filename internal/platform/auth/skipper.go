package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass session authentication. These are
// infrastructure endpoints and the credential endpoints themselves, which
// must be reachable without a session.
var publicPaths = map[string]bool{
	"/health":               true,
	"/health/db":            true,
	"/api/v1/auth/register": true,
	"/api/v1/auth/login":    true,
}

// Skipper returns true for requests whose path should skip authentication.
func Skipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// IsPublicPath reports whether the given path bypasses the session gate.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
