package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed at 10 rounds; raising it makes every login and
// signup proportionally more expensive.
const bcryptCost = 10

// HashPassword derives a salted bcrypt hash from a plaintext password.
// Output differs per call (embedded salt) but verifies deterministically.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext reproduces the hash.
// Any mismatch, including a malformed hash, is a boolean no.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
