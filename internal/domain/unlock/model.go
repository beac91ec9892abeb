package unlock

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Secret is a shared unlock code. Operators supply either the plaintext code
// or a bcrypt hash of it; when both are set the hash wins, so the plaintext
// never needs to live in the environment of a production deployment.
type Secret struct {
	Plain string
	Hash  string
}

// Configured reports whether any code is set at all. An unconfigured secret
// rejects every submission.
func (s Secret) Configured() bool {
	return s.Plain != "" || s.Hash != ""
}

// Verify checks a submitted code against the secret.
// INVARIANT: comparison of the plaintext form is constant-time
func (s Secret) Verify(code string) bool {
	if code == "" {
		return false
	}
	if s.Hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.Hash), []byte(code)) == nil
	}
	if s.Plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.Plain), []byte(code)) == 1
}
