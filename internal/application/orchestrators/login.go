package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"habitloop/internal/domain/identity"
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email string
}

// LoginResult carries the normalized identity for session creation.
type LoginResult struct {
	Email string
}

var ErrInvalidEmail = errors.New("enter a valid email")

// ExecuteLogin normalizes the submitted email into a session identity. There
// is no password and no account record; the email itself is the identity.
// POST: Returns the lower-cased trimmed email, or ErrInvalidEmail
func ExecuteLogin(_ context.Context, input LoginInput) (LoginResult, error) {
	email := identity.Normalize(input.Email)
	if !identity.Valid(email) {
		slog.Info("auth_event", "event", "login_failed", "reason", "empty_email")
		return LoginResult{}, ErrInvalidEmail
	}

	slog.Info("auth_event", "event", "login_success", "email", email)
	return LoginResult{Email: email}, nil
}
