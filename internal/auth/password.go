// Package auth handles operator credentials and the CLI session: salted
// password hashing, user registration and verification, and an explicit
// session state object with optional file persistence.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/rotisserie/eris"
)

const saltBytes = 16

// HashPassword hashes a password with a random hex salt. The stored
// format is "salt$hash" where hash is SHA-256 of salt+password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", eris.Wrap(err, "auth: generate salt")
	}
	saltHex := hex.EncodeToString(salt)
	sum := sha256.Sum256([]byte(saltHex + password))
	return saltHex + "$" + hex.EncodeToString(sum[:]), nil
}

// VerifyPassword checks a password against a stored "salt$hash" value.
// A malformed stored hash verifies as false rather than erroring.
func VerifyPassword(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:]) == want
}
