package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	domain "habitloop/internal/domain/catalog"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return NewFileStore(path), path
}

// TestLoad_MissingFile verifies an absent file yields an empty catalog.
func TestLoad_MissingFile(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.WeekCount() != 0 {
		t.Errorf("WeekCount = %d, want 0", c.WeekCount())
	}
	if c.Weeks == nil {
		t.Error("Weeks should be non-nil")
	}
	if s.Exists() {
		t.Error("Exists = true for missing file")
	}
}

// TestSaveLoad_RoundTrip verifies load(save(c)) == c.
func TestSaveLoad_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	c := domain.Catalog{Weeks: map[string][][]string{
		"1": {{"task a", "task b"}, {"task c"}},
		"3": {{"task d"}},
	}}
	if err := s.Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists() {
		t.Error("Exists = false after Save")
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

// TestLoad_Malformed verifies a corrupt file yields a ParseError.
func TestLoad_Malformed(t *testing.T) {
	s, path := newTestStore(t)
	if err := os.WriteFile(path, []byte("{{{not json"), 0o644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}

	_, err := s.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed file")
	}
	var pe *domain.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error type = %T, want *catalog.ParseError", err)
	}
}

// TestSave_LeavesNoTempFiles verifies the rename cleans up after itself.
func TestSave_LeavesNoTempFiles(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.Save(context.Background(), domain.Empty()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("dir entries = %d, want 1", len(entries))
	}
}

// TestSave_PrettyPrinted verifies the on-disk form is indented JSON.
func TestSave_PrettyPrinted(t *testing.T) {
	s, path := newTestStore(t)
	c := domain.Catalog{Weeks: map[string][][]string{"1": {{"x"}}}}
	if err := s.Save(context.Background(), c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"weeks\"") {
		t.Errorf("file not pretty-printed: %q", string(data))
	}
}
