package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	domain "habitloop/internal/domain/catalog"
)

// FileStore implements Store over a single JSON flat file.
//
// Saves are write-temp-then-rename so a crash mid-write never leaves a
// truncated catalog behind. Concurrent saves are last-write-wins; the single
// admin is expected to be the only writer.
type FileStore struct {
	path string
}

// NewFileStore creates a catalog store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and parses the catalog file.
// POST: Missing file returns an empty catalog, not an error
func (s *FileStore) Load(_ context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Empty(), nil
		}
		return domain.Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return domain.Parse(data)
}

// Save serializes the catalog and atomically replaces the file.
// POST: On success the file holds the full new catalog; on failure the old
// content is untouched
func (s *FileStore) Save(_ context.Context, c domain.Catalog) error {
	data, err := c.MarshalPretty()
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp catalog file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp catalog file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}

// Exists reports whether the catalog file is present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
