package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	catalogDomain "habitloop/internal/domain/catalog"
	revisionDomain "habitloop/internal/domain/revision"
)

// CatalogStoreForSave defines the store interface needed by SaveCatalog.
type CatalogStoreForSave interface {
	Save(ctx context.Context, c catalogDomain.Catalog) error
}

// RevisionStoreForSave defines the store interface needed by SaveCatalog.
type RevisionStoreForSave interface {
	Save(ctx context.Context, r revisionDomain.Revision) error
}

// SaveCatalogInput carries the raw editor submission.
type SaveCatalogInput struct {
	RawJSON string
	SavedBy string
}

// SaveCatalogDeps holds dependencies for SaveCatalog.
type SaveCatalogDeps struct {
	CatalogStore  CatalogStoreForSave
	RevisionStore RevisionStoreForSave // optional: nil skips the revision log
}

// SaveCatalogResult carries the accepted catalog and its pretty-printed form
// for re-display in the editor.
type SaveCatalogResult struct {
	Catalog catalogDomain.Catalog
	Pretty  string
}

// ExecuteSaveCatalog parses the submitted JSON and replaces the stored
// catalog wholesale. A parse failure touches nothing on disk; the caller
// re-renders the editor with the submitted text intact.
// POST: On success the catalog is persisted and a revision row is appended
func ExecuteSaveCatalog(ctx context.Context, input SaveCatalogInput, deps SaveCatalogDeps) (SaveCatalogResult, error) {
	cat, err := catalogDomain.Parse([]byte(input.RawJSON))
	if err != nil {
		return SaveCatalogResult{}, err
	}

	if err := deps.CatalogStore.Save(ctx, cat); err != nil {
		return SaveCatalogResult{}, err
	}

	// The revision log is best-effort: the save already happened.
	if deps.RevisionStore != nil {
		rev := revisionDomain.Revision{
			ID:        uuid.New().String(),
			SavedBy:   input.SavedBy,
			ByteSize:  len(input.RawJSON),
			WeekCount: cat.WeekCount(),
			SavedAt:   time.Now(),
		}
		if err := deps.RevisionStore.Save(ctx, rev); err != nil {
			slog.Error("catalog_event", "event", "revision_log_failed", "error", err)
		}
	}

	pretty, err := cat.MarshalPretty()
	if err != nil {
		return SaveCatalogResult{}, err
	}

	slog.Info("catalog_event", "event", "catalog_saved", "saved_by", input.SavedBy, "weeks", cat.WeekCount(), "bytes", len(input.RawJSON))
	return SaveCatalogResult{Catalog: cat, Pretty: string(pretty)}, nil
}
