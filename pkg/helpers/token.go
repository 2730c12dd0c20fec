package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// resetTokenBytes is the entropy of a password reset nonce.
const resetTokenBytes = 20

// GenResetToken returns a random hex nonce and the sha256 hex digest that gets stored.
// Only the digest is persisted; the raw value goes into the emailed link.
func GenResetToken() (raw string, hash string, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, HashResetToken(raw), nil
}

// HashResetToken is the one-way digest used to look up a pending reset.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
