package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
)

// Credential holds an account secret in write-only form. The plaintext is
// never stored; only an HMAC-SHA256 digest keyed by a per-credential salt.
type Credential struct {
	salt   []byte
	digest []byte
}

func NewCredential(secret string) *Credential {
	c := &Credential{}
	c.Set(secret)
	return c
}

// Set replaces the stored secret. A fresh salt is drawn on every call so two
// credentials with the same secret never share a digest.
func (c *Credential) Set(secret string) {
	salt := make([]byte, 16)
	_, _ = rand.Read(salt)

	c.salt = salt
	c.digest = digest(salt, secret)
}

// Matches reports whether the given secret equals the stored one. The compare
// is constant-time.
func (c *Credential) Matches(secret string) bool {
	return hmac.Equal(c.digest, digest(c.salt, secret))
}

func digest(salt []byte, secret string) []byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(secret))
	return mac.Sum(nil)
}
