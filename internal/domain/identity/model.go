package identity

import "strings"

// Identity in this system is a bare email string: lower-cased, trimmed, and
// held only in the session. There is no account record behind it.

// Normalize canonicalizes a submitted email. Returns "" if nothing usable
// remains after trimming.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Valid reports whether a normalized email can serve as a session identity.
// This is deliberately loose: the email is a session key, not an address we
// ever verify.
func Valid(email string) bool {
	return email != ""
}
