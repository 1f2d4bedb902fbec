// Package audit records ontology loads and assessment verdicts in a local
// SQLite database for external reporting. The engine only appends; nothing
// in the reasoning or scoring paths reads the log back, and assessment
// results are never cached here or anywhere else.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the audit database handle.
type Store struct {
	db *sql.DB
}

// Open creates a Store backed by the SQLite database at dsn, applying
// recommended pragmas and creating the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for append-mostly single-writer use.
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
	const schema = `
CREATE TABLE IF NOT EXISTS load_events (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	framework  TEXT NOT NULL,
	version    TEXT NOT NULL,
	skills     INTEGER NOT NULL,
	roles      INTEGER NOT NULL,
	success    INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS assessment_events (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	subject_id   TEXT NOT NULL,
	assessor_id  TEXT NOT NULL,
	skill_code   TEXT NOT NULL,
	target_level INTEGER NOT NULL,
	total        REAL NOT NULL,
	verdict      TEXT NOT NULL,
	pass_status  INTEGER NOT NULL,
	judge        TEXT NOT NULL
);`
	_, err := db.Exec(schema)
	return err
}

// DefaultDBPath resolves the audit database path in priority order:
// COMPASS_AUDIT_DB env var, then $XDG_DATA_HOME/compass/audit.db, then
// ~/.local/share/compass/audit.db.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("COMPASS_AUDIT_DB"); p != "" {
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

	p := filepath.Join(dataHome, "compass", "audit.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
