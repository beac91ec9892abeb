package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "habitloop_session"

// sessionMaxAge bounds how long a signed session cookie is honored.
const sessionMaxAge = 24 * time.Hour

// SecureCookies controls the Secure flag on session cookies. Set true in production.
var SecureCookies = false

// Session is the immutable per-request snapshot of session claims. Identity
// is a bare email; Premium and Admin are independent flags granted by unlock
// codes. A session with an empty Email can still carry flags (the unlock
// routes are reachable before login).
type Session struct {
	Email     string
	Premium   bool
	Admin     bool
	CreatedAt time.Time
}

// Identified reports whether the session carries a user identity.
// INVARIANT: Session fields are not mutated
func (s Session) Identified() bool {
	return s.Email != ""
}

// Codec signs and encodes session claims into the cookie. The cookie itself
// is the session store; there is no server-side session state.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec creates a session codec from a 32-byte signing key.
// Claims are signed but not encrypted; they contain nothing secret.
func NewCodec(hashKey []byte) *Codec {
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(int(sessionMaxAge.Seconds()))
	return &Codec{sc: sc}
}

// Read decodes the session from the request cookie.
// POST: Returns (zero, false) for a missing, tampered, or expired cookie
func (c *Codec) Read(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	var s Session
	if err := c.sc.Decode(sessionCookieName, cookie.Value, &s); err != nil {
		return Session{}, false
	}
	return s, true
}

// Write signs the session and sets it on the response. This is the only way
// session state changes: handlers mutate a copy and write it back whole.
func (c *Codec) Write(w http.ResponseWriter, s Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	encoded, err := c.sc.Encode(sessionCookieName, s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
	})
	return nil
}

// Clear removes the session cookie, returning the browser to anonymous.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// Auth returns middleware that decodes the session cookie and sets the
// session in context. It does NOT block anonymous requests; use RequireAuth
// for that.
func Auth(codec *Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, ok := codec.Read(r); ok {
				ctx := context.WithValue(r.Context(), sessionContextKey, session)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that redirects unidentified requests to /login.
// A session carrying only unlock flags but no email does not count.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSessionFromContext(r.Context())
		if !ok || !session.Identified() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
