package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// GenerateSecret creates a cryptographically random opaque secret.
// Used for API key secrets and note share tokens.
// Returns both the raw value (shown to the caller exactly once) and its
// SHA-256 hash (the only form ever stored).
func GenerateSecret() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)
	hash = HashSecret(raw)

	return raw, hash, nil
}

// HashSecret computes the SHA-256 hash of a secret as a hex string.
func HashSecret(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// SecretEqual compares a presented secret against a stored hash in
// constant time.
func SecretEqual(presented, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashSecret(presented)), []byte(storedHash)) == 1
}
