// Package credential hashes and verifies account passwords with bcrypt, a
// salted, deliberately slow KDF. Only the digest is ever stored; the salt
// and cost parameters are embedded in the digest string.
package credential

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/strokeward/strokeward/internal/platform/apperr"
)

// MinLength is the minimum plaintext length accepted at hashing time.
const MinLength = 8

type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted digest from plaintext. Plaintexts shorter than
// MinLength fail with apperr.ErrWeakCredential; the rejection is
// recoverable and never downgraded to a weaker hash.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) < MinLength {
		return "", apperr.ErrWeakCredential
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. The
// comparison is bcrypt's own, which recomputes the full digest and does
// not short-circuit on early byte mismatches.
func (h *Hasher) Verify(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// dummyDigest exists so that login attempts against unknown handles still
// pay for one full bcrypt comparison.
var dummyDigest, _ = bcrypt.GenerateFromPassword([]byte("strokeward-timing-pad"), bcrypt.DefaultCost)

// DummyCompare burns one bcrypt comparison and always reports false.
func (h *Hasher) DummyCompare(plaintext string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyDigest, []byte(plaintext))
	return false
}
