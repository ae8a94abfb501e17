// Package validate implements the input validation and sanitization
// pipeline that gates every write path into the account and record stores.
// All checks are total: malformed input produces a failed Result or a
// taxonomy error, never a panic.
package validate

import (
	"html"
	"strings"

	"github.com/strokeward/strokeward/internal/platform/apperr"
)

// String escapes HTML-significant characters (&, <, >, and both quote
// kinds) and trims surrounding whitespace. The result is safe to store and
// to render later without further escaping.
func String(s string) string {
	return strings.TrimSpace(html.EscapeString(s))
}

// Value sanitizes an arbitrary field value. Values that are not text fail
// with apperr.ErrInvalidInput.
func Value(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", apperr.ErrInvalidInput
	}
	return String(s), nil
}

// SanitizeAll applies String to every text-valued entry of fields and
// passes non-text entries through unchanged. It returns a new map; the
// input is never mutated.
func SanitizeAll(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = String(s)
		} else {
			out[k] = v
		}
	}
	return out
}
