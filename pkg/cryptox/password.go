package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when a Hasher is constructed
// without an explicit cost.
const DefaultCost = 12

// ErrPasswordTooLong reports a password exceeding bcrypt's 72-byte input limit.
var ErrPasswordTooLong = errors.New("cryptox: password exceeds 72 bytes")

// Hasher produces and verifies salted adaptive-cost password digests. The
// zero value is not usable; construct with NewHasher so the cost factor is
// always explicit, never read from ambient state.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Cost reports the configured work factor.
func (h Hasher) Cost() int { return h.cost }

// Hash returns a salted bcrypt digest of the password. The salt is generated
// internally per call, so hashing the same password twice yields different
// digests.
func (h Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches the stored digest. A malformed or
// truncated digest counts as a mismatch, never a panic: callers treat any
// unreadable stored hash the same as a wrong password.
func (h Hasher) Verify(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
