package revision

import (
	"context"

	domain "habitloop/internal/domain/revision"
)

// Store persists the append-only catalog revision log.
type Store interface {
	Save(ctx context.Context, value domain.Revision) error
	ListRecent(ctx context.Context, limit int) ([]domain.Revision, error)
}
