package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"streakboard/internal/records"
)

const currentVersion = 1

// DefaultBranches are seeded on first migration and cannot be removed.
var DefaultBranches = []string{
	"Abdoun", "Abdali", "7th Circle", "Yasmeen", "Abdoun Circle", "Sweifieh",
	"Gardens", "Khalda", "Dabouq", "Shmeisani", "Mecca Street", "Rabieh",
}

var (
	_ records.Repository      = (*Store)(nil)
	_ records.BranchDirectory = (*Store)(nil)
)

// Store persists submission records and the branch directory in SQLite.
// It implements records.Repository and records.BranchDirectory.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("Record store opened")
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	// branch_id on records is a weak reference: removing a branch keeps its history.
	const ddl = `
	CREATE TABLE IF NOT EXISTS branches (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
		is_default  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS records (
		id                     TEXT PRIMARY KEY,
		branch_id              TEXT NOT NULL,
		date                   TEXT NOT NULL,
		deposit_status         TEXT NOT NULL DEFAULT '',
		handover_status        TEXT NOT NULL DEFAULT '',
		invoice_status         TEXT NOT NULL DEFAULT '',
		deposit_odoo_session   TEXT NOT NULL DEFAULT '',
		handover_odoo_session  TEXT NOT NULL DEFAULT '',
		deposit_notes          TEXT NOT NULL DEFAULT '',
		handover_notes         TEXT NOT NULL DEFAULT '',
		deposit_updated_at     TEXT,
		handover_updated_at    TEXT,
		invoice_updated_at     TEXT,
		created_at             TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		UNIQUE(branch_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);
	`
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(ddl); err != nil {
		return err
	}

	placeholders := make([]string, 0, len(DefaultBranches))
	args := make([]any, 0, len(DefaultBranches)*2)
	for i, name := range DefaultBranches {
		placeholders = append(placeholders, "(?, ?, 1)")
		args = append(args, i+1, name)
	}
	seed := `INSERT OR IGNORE INTO branches (id, name, is_default) VALUES ` + strings.Join(placeholders, ", ")
	if _, err := tx.Exec(seed, args...); err != nil {
		return fmt.Errorf("seed branches: %w", err)
	}

	return tx.Commit()
}

// DefaultDBPath returns ~/.config/streakboard/streakboard.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "streakboard", "streakboard.db"), nil
}
