package orchestrators

import (
	"context"
	"log/slog"

	domain "habitloop/internal/domain/progress"
)

// ProgressStoreForCompleteDay defines the store interface needed by CompleteDay.
type ProgressStoreForCompleteDay interface {
	MarkComplete(ctx context.Context, c domain.Completion) error
}

// CompleteDayInput carries input for the complete-day orchestrator.
type CompleteDayInput struct {
	User string
	Week int
	Day  int
}

// CompleteDayDeps holds dependencies for CompleteDay.
type CompleteDayDeps struct {
	ProgressStore ProgressStoreForCompleteDay
}

// ExecuteCompleteDay records a day completion. Week and day are not
// bounds-checked here; the store accepts any integers and the view layer
// clamps what it derives from the count.
// POST: The completion row exists; replays are no-ops
func ExecuteCompleteDay(ctx context.Context, input CompleteDayInput, deps CompleteDayDeps) error {
	c := domain.Completion{User: input.User, Week: input.Week, Day: input.Day}
	if err := deps.ProgressStore.MarkComplete(ctx, c); err != nil {
		return err
	}

	slog.Info("progress_event", "event", "day_completed", "user", input.User, "week", input.Week, "day", input.Day)
	return nil
}
