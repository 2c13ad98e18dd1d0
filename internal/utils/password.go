package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from the given plaintext password.
//
// The cost parameter controls the adaptive work factor; values outside the
// range supported by bcrypt fall back to the library default.
//
// Parameters:
//
//	password - the plaintext password to hash
//	cost     - bcrypt cost factor (e.g. 10)
//
// Returns:
//
//	string - the bcrypt hash in its standard encoded form
//	error  - non-nil if hashing fails (e.g. password longer than 72 bytes)
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash against a plaintext candidate.
// Returns true only when the candidate matches the hash. Never compares
// hashes with plain equality.
func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
