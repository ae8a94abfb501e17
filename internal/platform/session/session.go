// Package session tracks server-side login sessions. A session is an
// opaque token bound to one account, with a sliding inactivity expiry; the
// token itself carries no claims, so destroying the stored record revokes
// it immediately.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of one authenticated login. Role is a
// snapshot taken at login time and is not re-derived on later requests.
type Session struct {
	Token     string    `json:"token"`
	AccountID uuid.UUID `json:"account_id"`
	Handle    string    `json:"handle"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's inactivity window has passed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store tracks live sessions. Get returns (nil, nil) for unknown or
// expired tokens; implementations must never hand back an expired session.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	// Touch slides the inactivity window forward. Unknown tokens are a
	// no-op, not an error.
	Touch(ctx context.Context, token string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
}
