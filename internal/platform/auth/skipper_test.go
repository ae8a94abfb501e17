package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSkipper_PublicPaths(t *testing.T) {
	publicPaths := []string{
		"/health",
		"/health/db",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
	}

	for _, path := range publicPaths {
		t.Run(path, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath(path)

			if !Skipper(c) {
				t.Errorf("expected Skipper to return true for %s", path)
			}
		})
	}
}

func TestSkipper_ProtectedPaths(t *testing.T) {
	protectedPaths := []string{
		"/api/v1/records",
		"/api/v1/records/search",
		"/api/v1/accounts",
		"/api/v1/audit",
		"/api/v1/auth/logout",
		"/api/v1/auth/me",
		"/",
		"/health/extra",
	}

	for _, path := range protectedPaths {
		t.Run(path, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath(path)

			if Skipper(c) {
				t.Errorf("expected Skipper to return false for %s", path)
			}
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	if !IsPublicPath("/health") {
		t.Error("expected /health to be public")
	}
	if !IsPublicPath("/api/v1/auth/login") {
		t.Error("expected /api/v1/auth/login to be public")
	}
	if IsPublicPath("/api/v1/records") {
		t.Error("expected /api/v1/records to NOT be public")
	}
	if IsPublicPath("/api/v1/auth/logout") {
		t.Error("expected /api/v1/auth/logout to NOT be public")
	}
}
