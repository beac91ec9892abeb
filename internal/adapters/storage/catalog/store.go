package catalog

import (
	"context"

	domain "habitloop/internal/domain/catalog"
)

// Store persists the task catalog as a whole. There is no partial update:
// every Save replaces the full catalog.
type Store interface {
	// Load reads the catalog. A missing file yields an empty catalog; a
	// present but malformed file yields a *catalog.ParseError.
	Load(ctx context.Context) (domain.Catalog, error)

	// Save replaces the stored catalog.
	Save(ctx context.Context, c domain.Catalog) error

	// Exists reports whether a stored catalog is present at all. Used to
	// decide whether to seed defaults on startup.
	Exists() bool
}
