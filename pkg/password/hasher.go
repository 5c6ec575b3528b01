package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt so the cost is set in one place.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash produces a salted digest. Each call salts independently, so hashing
// the same plaintext twice yields two different digests.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Check reports whether plaintext matches the stored digest. A false return
// means wrong password; a corrupt digest surfaces through CheckStrict instead.
func (h *Hasher) Check(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// CheckStrict distinguishes a mismatch (false, nil) from a malformed stored
// digest (false, err), so callers can treat the latter as a backend fault.
func (h *Hasher) CheckStrict(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, fmt.Errorf("invalid password digest: %w", err)
}

func (h *Hasher) SetCost(cost int) {
	h.cost = cost
}
