package auth

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// BcryptHasher is the bcrypt PasswordHasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash
func (h *BcryptHasher) Check(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the bcrypt work factor in use
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// GenerateTemporaryPassword returns an 8 character uppercase hex string
func GenerateTemporaryPassword() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
