// Package credential owns the password hashing and verification policy.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the fixed bcrypt cost for stored password hashes.
const HashCost = 8

// Hasher applies the account password hashing policy.
type Hasher struct {
	cost int
}

// NewHasher returns a hasher with the fixed production cost.
func NewHasher() Hasher {
	return Hasher{cost: HashCost}
}

// Hash produces a salted one-way hash of the plaintext.
//
// Callers must treat a failure as fatal to the surrounding save: the record
// is never persisted with the plaintext in the password field.
func (h Hasher) Hash(plaintext string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = HashCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (h Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
