package web

import (
	"net/http"
	"time"

	"habitloop/internal/adapters/email"
	"habitloop/internal/adapters/http/middleware"
	catalogStore "habitloop/internal/adapters/storage/catalog"
	progressStore "habitloop/internal/adapters/storage/progress"
	revisionStore "habitloop/internal/adapters/storage/revision"
	"habitloop/internal/domain/unlock"
)

// Stores holds all storage dependencies.
type Stores struct {
	ProgressStore progressStore.Store
	CatalogStore  catalogStore.Store
	RevisionStore revisionStore.Store
}

// Options carries the configuration NewMux needs.
type Options struct {
	StaticDir    string
	SessionKey   []byte // 32 bytes, signs the session cookie
	CSRFKey      []byte // 32 bytes
	PremiumCode  unlock.Secret
	AdminCode    unlock.Secret
	CheckoutLink string
	Production   bool
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session codec instance (set by NewMux)
var sessions *middleware.Codec

// Unlock secrets and the external checkout link (set by NewMux)
var premiumSecret unlock.Secret
var adminSecret unlock.Secret
var checkoutLink string

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(opts Options, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewCodec(opts.SessionKey)
	premiumSecret = opts.PremiumCode
	adminSecret = opts.AdminCode
	checkoutLink = opts.CheckoutLink
	middleware.SecureCookies = opts.Production

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
