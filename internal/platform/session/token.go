package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenSize is the token entropy in bytes (256 bits).
const tokenSize = 32

// GenerateToken returns a cryptographically random, URL-safe session token.
func GenerateToken() (string, error) {
	b := make([]byte, tokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
