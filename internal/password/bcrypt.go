package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = 12

// Hasher wraps bcrypt with a fixed work factor. It holds no mutable state
// and is safe for concurrent use.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the default work factor.
func NewHasher() *Hasher {
	return &Hasher{cost: DefaultCost}
}

// NewHasherWithCost creates a Hasher with an explicit work factor,
// clamped to bcrypt's supported range. Lower costs are useful in tests.
func NewHasherWithCost(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted adaptive hash of the password. Input length limits
// are enforced upstream by validation.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares a plaintext password against a stored hash using bcrypt's
// constant-time comparison. A malformed hash yields false, never an error.
func (h *Hasher) Verify(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
