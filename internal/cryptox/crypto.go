// Package cryptox holds the one-way password digest used by the credential
// store. Digests are bcrypt hashes; the plaintext is never stored.
package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DigestCost is the bcrypt work factor for new digests.
var DigestCost = bcrypt.DefaultCost

// MakeDigest returns the one-way digest of password.
func MakeDigest(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), DigestCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckDigest reports whether password matches digest. A malformed digest
// never matches.
func CheckDigest(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// WipeBytes overwrites b with zeros; used for passwords read from a terminal.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
