package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"habitloop/internal/adapters/email"
	"habitloop/internal/domain/unlock"
)

var ErrInvalidCode = errors.New("invalid code")

// UnlockPremiumInput carries input for the premium unlock orchestrator.
type UnlockPremiumInput struct {
	Code  string
	Email string // session identity if present; used for the confirmation email
}

// UnlockPremiumDeps holds dependencies for premium unlock.
type UnlockPremiumDeps struct {
	Secret unlock.Secret
	Sender email.Sender // optional: nil skips the confirmation email
	From   string
}

// ExecuteUnlockPremium verifies the premium code. A wrong code changes no
// state and carries no lockout; the caller re-renders the locked view.
// POST: nil means the caller may set the session premium flag
func ExecuteUnlockPremium(ctx context.Context, input UnlockPremiumInput, deps UnlockPremiumDeps) error {
	if !deps.Secret.Verify(input.Code) {
		slog.Info("unlock_event", "event", "premium_rejected", "email", input.Email)
		return ErrInvalidCode
	}

	slog.Info("unlock_event", "event", "premium_granted", "email", input.Email)

	// Confirmation email is best-effort; a provider failure must not undo
	// an unlock the user already paid for.
	if deps.Sender != nil && input.Email != "" {
		req := email.SendRequest{
			To:      []string{input.Email},
			From:    deps.From,
			Subject: "Premium weeks unlocked",
			HTML:    fmt.Sprintf("<p>Hi %s,</p><p>Your premium weeks are now unlocked. Keep the streak going!</p>", input.Email),
		}
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Error("unlock_event", "event", "confirmation_email_failed", "email", input.Email, "error", err)
		}
	}
	return nil
}

// UnlockAdminInput carries input for the admin unlock orchestrator.
type UnlockAdminInput struct {
	Code string
}

// UnlockAdminDeps holds dependencies for admin unlock.
type UnlockAdminDeps struct {
	Secret unlock.Secret
}

// ExecuteUnlockAdmin verifies the admin code.
// POST: nil means the caller may set the session admin flag
func ExecuteUnlockAdmin(_ context.Context, input UnlockAdminInput, deps UnlockAdminDeps) error {
	if !deps.Secret.Verify(input.Code) {
		slog.Info("unlock_event", "event", "admin_rejected")
		return ErrInvalidCode
	}
	slog.Info("unlock_event", "event", "admin_granted")
	return nil
}
