package progress

import (
	"context"

	domain "habitloop/internal/domain/progress"
)

// Store persists day-completion state.
type Store interface {
	// MarkComplete records that the user finished the given day. Replaying
	// the same (user, week, day) has no additional effect.
	MarkComplete(ctx context.Context, c domain.Completion) error

	// CountCompleted returns how many days the user has completed in the
	// week. Contiguity is not checked; only the count matters.
	CountCompleted(ctx context.Context, user string, week int) (int, error)
}
