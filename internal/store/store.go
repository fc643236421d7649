// Package store is the client's local SQLite cache: the persisted
// account session, the submission journal that makes completion
// submission at-most-once across retries and restarts, and the
// completion history behind the stats command.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite cache database.
type Store struct {
	db *sql.DB
}

// Open connects to the cache database at dsn, applies pragmas, and
// creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user client use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS account (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			token TEXT NOT NULL,
			user_id TEXT NOT NULL,
			expires_at INTEGER,
			profile_json TEXT,
			fetched_at INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS submissions (
			session_id TEXT PRIMARY KEY,
			lesson_id TEXT NOT NULL,
			quiz_id TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			submitted INTEGER NOT NULL DEFAULT 0,
			xp_gained INTEGER,
			level INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_lesson ON submissions (lesson_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath returns the path to the cache database, honoring
// FLUENTWAVE_DB and XDG_DATA_HOME before falling back to
// ~/.local/share/fluentwave/fluentwave.db. The parent directory is
// created if needed.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FLUENTWAVE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "fluentwave", "fluentwave.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
