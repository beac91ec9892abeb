package revision

import (
	"context"
	"fmt"
	"time"

	"habitloop/internal/adapters/storage"
	domain "habitloop/internal/domain/revision"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new revision store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends a revision row.
// PRE: entity has been validated
// POST: Row is persisted; revisions are never updated or deleted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Revision) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	query := "INSERT INTO catalog_revision (id, saved_by, byte_size, week_count, saved_at) VALUES (?, ?, ?, ?, ?)"
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.SavedBy,
		entity.ByteSize,
		entity.WeekCount,
		entity.SavedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save catalog revision: %w", err)
	}
	return nil
}

// ListRecent returns the newest revisions first.
// PRE: limit > 0
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Revision, error) {
	query := "SELECT id, saved_by, byte_size, week_count, saved_at FROM catalog_revision ORDER BY saved_at DESC LIMIT ?"

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog revisions: %w", err)
	}
	defer rows.Close()

	var out []domain.Revision
	for rows.Next() {
		var entity domain.Revision
		var savedAtStr string
		if err := rows.Scan(&entity.ID, &entity.SavedBy, &entity.ByteSize, &entity.WeekCount, &savedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan catalog revision: %w", err)
		}
		entity.SavedAt, err = time.Parse(time.RFC3339Nano, savedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse saved_at: %w", err)
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}
