package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
	{
		Version: 2,
		Name:    "add_pending_entries_table",
		Up:      migration002AddPendingEntriesTable,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		slog.Info("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version, migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT DEFAULT (datetime('now'))
		)
	`)
	return err
}

func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// migration001InitialSchema creates the jobs and saved_routes tables.
// Column layout matches the pre-Go database so existing files keep working.
func migration001InitialSchema(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			client     TEXT NOT NULL DEFAULT '',
			date       TEXT DEFAULT '',
			dest       TEXT DEFAULT '',
			route      TEXT DEFAULT '',
			miles      REAL NOT NULL DEFAULT 0,
			trip_type  TEXT NOT NULL DEFAULT 'round',
			trips      INTEGER NOT NULL DEFAULT 1,
			notes      TEXT DEFAULT '',
			created_at TEXT DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS saved_routes (
			key        TEXT PRIMARY KEY,
			client     TEXT NOT NULL DEFAULT '',
			dest       TEXT DEFAULT '',
			route      TEXT DEFAULT '',
			miles      REAL NOT NULL DEFAULT 0,
			trip_type  TEXT NOT NULL DEFAULT 'round',
			trips      INTEGER NOT NULL DEFAULT 1,
			updated_at TEXT DEFAULT (datetime('now'))
		)
	`)
	return err
}

// migration002AddPendingEntriesTable creates the reconciliation drafts table.
func migration002AddPendingEntriesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS pending_entries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			uid        TEXT NOT NULL DEFAULT '',
			summary    TEXT NOT NULL DEFAULT '',
			client     TEXT NOT NULL DEFAULT '',
			date       TEXT DEFAULT '',
			dest       TEXT DEFAULT '',
			route      TEXT DEFAULT '',
			miles      REAL NOT NULL DEFAULT 0,
			trip_type  TEXT NOT NULL DEFAULT 'round',
			trips      INTEGER NOT NULL DEFAULT 1,
			notes      TEXT DEFAULT '',
			match_note TEXT DEFAULT '',
			status     TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_pending_entries_status ON pending_entries(status)`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_pending_entries_uid ON pending_entries(uid)`)
	return err
}
