package validate

import (
	"regexp"
)

// Result reports the outcome of a validation check. Reason is a
// human-readable message suitable for display; Field names the offending
// field when the check covers more than one.
type Result struct {
	OK     bool
	Field  string
	Reason string
}

func pass() Result {
	return Result{OK: true}
}

func fail(field, reason string) Result {
	return Result{Field: field, Reason: reason}
}

// Compiled patterns for field format checks.
var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};:,.<>?]`)
)

// Email reports whether email sanitizes to a local-part@domain.tld shape.
func Email(email string) bool {
	return emailPattern.MatchString(String(email))
}

// Handle reports whether handle sanitizes to 3-20 characters drawn from
// letters, digits, underscore, and hyphen.
func Handle(handle string) bool {
	return handlePattern.MatchString(String(handle))
}

// Password checks password strength. Rules apply in a fixed order (length,
// uppercase, lowercase, digit, special character) and the first failing
// rule wins, each with its own reason.
func Password(password string) Result {
	if len(password) < 8 {
		return fail("password", "Password must be at least 8 characters long")
	}
	if !upperPattern.MatchString(password) {
		return fail("password", "Password must contain an uppercase letter")
	}
	if !lowerPattern.MatchString(password) {
		return fail("password", "Password must contain a lowercase letter")
	}
	if !digitPattern.MatchString(password) {
		return fail("password", "Password must contain a number")
	}
	if !specialPattern.MatchString(password) {
		return fail("password", "Password must contain a special character")
	}
	return pass()
}
