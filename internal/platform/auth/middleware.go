package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/strokeward/strokeward/internal/platform/session"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	HandleKey    contextKey = "handle"
	RoleKey      contextKey = "role"
	TokenKey     contextKey = "session_token"
)

// CookieName is the cookie the browser client uses to carry the session
// token. API clients send the same token as a bearer credential instead.
const CookieName = "strokeward_session"

// Gate authenticates requests against the session store and manages the
// session lifecycle (issue on login, revoke on logout). Every authenticated
// request slides the inactivity window forward by the configured TTL.
type Gate struct {
	store session.Store
	ttl   time.Duration
}

func NewGate(store session.Store, ttl time.Duration) *Gate {
	return &Gate{store: store, ttl: ttl}
}

// Issue creates a new session for an authenticated account and returns it.
// Role is snapshotted at login time; later role changes take effect on the
// next login.
func (g *Gate) Issue(ctx context.Context, accountID uuid.UUID, handle, role string) (*session.Session, error) {
	token, err := session.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &session.Session{
		Token:     token,
		AccountID: accountID,
		Handle:    handle,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}
	if err := g.store.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Revoke destroys the session for the given token. Revoking an unknown or
// already-expired token is not an error.
func (g *Gate) Revoke(ctx context.Context, token string) error {
	return g.store.Delete(ctx, token)
}

// TTL returns the configured inactivity window.
func (g *Gate) TTL() time.Duration {
	return g.ttl
}

// Middleware rejects requests without a live session and places the
// session's identity on the request context. Requests matched by skipper
// pass through unauthenticated.
func (g *Gate) Middleware(skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			ctx := c.Request().Context()
			s, err := g.store.Get(ctx, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}
			if s == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or invalid")
			}

			// Activity slides the inactivity window.
			if err := g.store.Touch(ctx, token, time.Now().Add(g.ttl)); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}

			ctx = context.WithValue(ctx, AccountIDKey, s.AccountID)
			ctx = context.WithValue(ctx, HandleKey, s.Handle)
			ctx = context.WithValue(ctx, RoleKey, s.Role)
			ctx = context.WithValue(ctx, TokenKey, token)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// extractToken pulls the session token from the Authorization header
// (preferred) or the session cookie.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func AccountIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(AccountIDKey).(uuid.UUID)
	return id
}

func HandleFromContext(ctx context.Context) string {
	handle, _ := ctx.Value(HandleKey).(string)
	return handle
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}
