// Package apperr defines the error taxonomy for expected failures. Services
// return these values instead of raising ad-hoc errors so that handlers can
// map them to HTTP responses in one place, and so that internal store errors
// never leak their text to clients.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrInvalidInput is returned when a non-string value reaches a
	// sanitizer that expected text.
	ErrInvalidInput = errors.New("input must be a string")

	// ErrWeakCredential is returned when a plaintext password is too short
	// to hash. It is a recoverable validation failure, never a reason to
	// fall back to a weaker hash.
	ErrWeakCredential = errors.New("password must be at least 8 characters long")

	// ErrAuthenticationFailed covers unknown handle, wrong password, and
	// inactive account alike. Callers must not distinguish between them.
	ErrAuthenticationFailed = errors.New("invalid username or password")

	// ErrUnauthorized is returned when a protected operation is reached
	// without a live session.
	ErrUnauthorized = errors.New("authentication required")

	// ErrDuplicateIdentity is returned when a handle or email collides with
	// an existing account, including when a racing insert loses to the
	// store's uniqueness constraint.
	ErrDuplicateIdentity = errors.New("username or email already exists")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable is returned when a backing store cannot be
	// reached. The client sees a generic message; detail goes to the log.
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// Validation reports a field-level format, range, or missing-field
// violation. It carries a structured reason suitable for display.
type Validation struct {
	Field  string
	Reason string
}

func (e *Validation) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidation builds a Validation error for the given field.
func NewValidation(field, reason string) *Validation {
	return &Validation{Field: field, Reason: reason}
}

// JSON writes the HTTP response for err. Expected failures map to their
// status code and user-facing message; anything unrecognized is treated as
// an internal failure and answered generically, without exposing the
// underlying error text.
func JSON(c echo.Context, err error) error {
	var v *Validation
	if errors.As(err, &v) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":  v.Reason,
			"field":  v.Field,
			"reason": v.Reason,
		})
	}

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrWeakCredential):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": userMessage(err)})
	case errors.Is(err, ErrAuthenticationFailed), errors.Is(err, ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": userMessage(err)})
	case errors.Is(err, ErrDuplicateIdentity):
		return c.JSON(http.StatusConflict, map[string]string{"error": userMessage(err)})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": userMessage(err)})
	case errors.Is(err, ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": userMessage(err)})
	}

	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "an internal error occurred",
	})
}

// userMessage returns the sentinel's own text, which is written to be safe
// for end users.
func userMessage(err error) string {
	for _, sentinel := range []error{
		ErrInvalidInput, ErrWeakCredential, ErrAuthenticationFailed,
		ErrUnauthorized, ErrDuplicateIdentity, ErrNotFound, ErrStoreUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "an internal error occurred"
}
