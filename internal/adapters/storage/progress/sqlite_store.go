package progress

import (
	"context"
	"fmt"

	"habitloop/internal/adapters/storage"
	domain "habitloop/internal/domain/progress"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new progress store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// MarkComplete upserts a completion row.
// PRE: c.User is non-empty
// POST: Exactly one row exists for (user, week, day); the call is durable on return
func (s *SQLiteStore) MarkComplete(ctx context.Context, c domain.Completion) error {
	query := `INSERT INTO progress (user, week, day, completed) VALUES (?, ?, ?, 1)
		ON CONFLICT(user, week, day) DO UPDATE SET completed = 1`

	if _, err := s.db.ExecContext(ctx, query, c.User, c.Week, c.Day); err != nil {
		return fmt.Errorf("failed to mark day complete: %w", err)
	}
	return nil
}

// CountCompleted counts completed rows for a user and week.
// POST: Returns 0 for a user or week with no completions
func (s *SQLiteStore) CountCompleted(ctx context.Context, user string, week int) (int, error) {
	query := "SELECT COUNT(*) FROM progress WHERE user = ? AND week = ? AND completed = 1"

	var n int
	if err := s.db.QueryRowContext(ctx, query, user, week).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count completed days: %w", err)
	}
	return n, nil
}
