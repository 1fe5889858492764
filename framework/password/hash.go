package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash returns the bcrypt hash of pw. A cost of zero uses bcrypt.DefaultCost.
func Hash(pw string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether pw matches the bcrypt hash.
func Verify(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Hasher hashes with a fixed bcrypt cost.
type Hasher struct {
	Cost int
}

// Hash is Hash(pw, h.Cost).
func (h Hasher) Hash(pw string) (string, error) { return Hash(pw, h.Cost) }

// Verify is Verify(pw, hash).
func (h Hasher) Verify(pw, hash string) bool { return Verify(pw, hash) }
