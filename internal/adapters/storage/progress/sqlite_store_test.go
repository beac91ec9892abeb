package progress

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"habitloop/internal/adapters/storage"
	domain "habitloop/internal/domain/progress"
)

// newTestStore creates a store over an in-memory migrated database.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	// A second pooled connection would see its own empty :memory: database
	db.SetMaxOpenConns(1)
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return NewSQLiteStore(db)
}

// TestMarkComplete_DistinctDaysCount verifies n distinct marks count as n.
func TestMarkComplete_DistinctDaysCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		if err := s.MarkComplete(ctx, domain.Completion{User: "a@b", Week: 1, Day: day}); err != nil {
			t.Fatalf("MarkComplete day %d failed: %v", day, err)
		}
	}

	n, err := s.CountCompleted(ctx, "a@b", 1)
	if err != nil {
		t.Fatalf("CountCompleted failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

// TestMarkComplete_Idempotent verifies replaying the same triple counts once.
func TestMarkComplete_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.MarkComplete(ctx, domain.Completion{User: "a@b", Week: 2, Day: 4}); err != nil {
			t.Fatalf("MarkComplete repeat %d failed: %v", i, err)
		}
	}

	n, err := s.CountCompleted(ctx, "a@b", 2)
	if err != nil {
		t.Fatalf("CountCompleted failed: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

// TestCountCompleted_Isolation verifies counts are keyed by user and week.
func TestCountCompleted_Isolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	must := func(c domain.Completion) {
		t.Helper()
		if err := s.MarkComplete(ctx, c); err != nil {
			t.Fatalf("MarkComplete failed: %v", err)
		}
	}
	must(domain.Completion{User: "a@b", Week: 1, Day: 1})
	must(domain.Completion{User: "a@b", Week: 2, Day: 1})
	must(domain.Completion{User: "c@d", Week: 1, Day: 1})
	must(domain.Completion{User: "c@d", Week: 1, Day: 2})

	cases := []struct {
		user string
		week int
		want int
	}{
		{"a@b", 1, 1},
		{"a@b", 2, 1},
		{"c@d", 1, 2},
		{"c@d", 2, 0},
		{"nobody", 1, 0},
	}
	for _, c := range cases {
		n, err := s.CountCompleted(ctx, c.user, c.week)
		if err != nil {
			t.Fatalf("CountCompleted(%q, %d) failed: %v", c.user, c.week, err)
		}
		if n != c.want {
			t.Errorf("CountCompleted(%q, %d) = %d, want %d", c.user, c.week, n, c.want)
		}
	}
}

// TestMarkComplete_NoBoundsValidation verifies any integer week/day is accepted.
func TestMarkComplete_NoBoundsValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.MarkComplete(ctx, domain.Completion{User: "a@b", Week: 99, Day: -3}); err != nil {
		t.Fatalf("MarkComplete out-of-range failed: %v", err)
	}
	n, err := s.CountCompleted(ctx, "a@b", 99)
	if err != nil {
		t.Fatalf("CountCompleted failed: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
