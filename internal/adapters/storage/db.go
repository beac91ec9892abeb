package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// migration is one schema step. The schema_version table tracks the
// high-water mark; each step applies at most once, in order.
type migration struct {
	version int
	name    string
	stmt    string
}

var migrations = []migration{
	{
		version: 1,
		name:    "progress table",
		stmt: `
		CREATE TABLE IF NOT EXISTS progress (
			user TEXT NOT NULL,
			week INTEGER NOT NULL,
			day INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (user, week, day)
		);`,
	},
	{
		version: 2,
		name:    "catalog revision log",
		stmt: `
		CREATE TABLE IF NOT EXISTS catalog_revision (
			id TEXT PRIMARY KEY,
			saved_by TEXT NOT NULL DEFAULT '',
			byte_size INTEGER NOT NULL,
			week_count INTEGER NOT NULL,
			saved_at TEXT NOT NULL
		);`,
	},
}

// LatestSchemaVersion returns the version the database reaches after all
// migrations apply.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the current schema version, 0 for a fresh database.
func SchemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version: %w", err)
	}
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB applies all pending migrations. Each migration runs in its own
// transaction together with its schema_version bump.
// PRE: db is a valid database connection
// POST: Schema is at LatestSchemaVersion
func MigrateDB(db *sql.DB, dbPath string) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
		slog.Info("schema_migrated", "version", m.version, "name", m.name, "db", dbPath)
	}

	return nil
}
