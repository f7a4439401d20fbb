// Package password wraps the credential hashing the auth service relies on.
// Login passwords go through bcrypt; refresh tokens are stored and looked up
// by their SHA-256 digest so the raw token never reaches the database.
package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// MinLength is the minimum password length accepted for new accounts.
const MinLength = 8

// Hash derives a bcrypt hash from a plaintext password.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// HashToken returns the hex-encoded SHA-256 digest of a refresh token.
// Deterministic, so the stored digest doubles as the lookup key.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidatePassword checks a candidate password against the account policy.
func ValidatePassword(candidate string) bool {
	return len(candidate) >= MinLength
}
