package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// otpRange bounds the numeric one-time code space: [0, 999999].
var otpRange = big.NewInt(1_000_000)

// GenerateOTPCode draws a 6-digit one-time code uniformly at random from
// [0, 999999] using crypto/rand and returns it zero-padded, so codes with
// leading zeros are as likely as any other.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", fmt.Errorf("error generating one-time code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateResetToken produces a random 20-byte password reset token.
//
// Returns:
//
//	raw  - the hex-encoded token handed to the user exactly once
//	hash - the SHA-256 hex digest stored server-side for later comparison
func GenerateResetToken() (raw string, hash string, err error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("error generating reset token: %w", err)
	}

	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken returns the SHA-256 hex digest of a raw reset token.
// The raw token itself is never persisted.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// SecureCompare reports whether two strings are equal using a comparison
// whose duration does not depend on where they differ.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
