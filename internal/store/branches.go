package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"streakboard/internal/records"
)

// List returns every branch ordered by id.
func (s *Store) List(ctx context.Context) ([]records.Branch, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM branches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	branches := []records.Branch{}
	for rows.Next() {
		var id int64
		var b records.Branch
		if err := rows.Scan(&id, &b.Name); err != nil {
			return nil, err
		}
		b.ID = strconv.FormatInt(id, 10)
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// Add creates a branch. Names are unique regardless of case.
func (s *Store) Add(ctx context.Context, name string) (*records.Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", records.ErrInvalidBranch)
	}

	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO branches (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert branch: %w", err)
	}
	id, _ := res.LastInsertId()
	return &records.Branch{ID: strconv.FormatInt(id, 10), Name: name}, nil
}

// Rename changes a branch's display name.
func (s *Store) Rename(ctx context.Context, id, name string) (*records.Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", records.ErrInvalidBranch)
	}

	key, _, err := s.lookupBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, key); err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE branches SET name = ? WHERE id = ?`, name, key); err != nil {
		return nil, fmt.Errorf("rename branch %s: %w", id, err)
	}
	return &records.Branch{ID: strconv.FormatInt(key, 10), Name: name}, nil
}

// Remove deletes a custom branch. Seeded branches are protected and records
// referencing the branch are left untouched.
func (s *Store) Remove(ctx context.Context, id string) error {
	key, isDefault, err := s.lookupBranch(ctx, id)
	if err != nil {
		return err
	}
	if isDefault {
		return fmt.Errorf("%w: %s", records.ErrDefaultBranch, id)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM branches WHERE id = ?`, key); err != nil {
		return fmt.Errorf("delete branch %s: %w", id, err)
	}
	return nil
}

func (s *Store) lookupBranch(ctx context.Context, id string) (int64, bool, error) {
	key, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", records.ErrBranchNotFound, id)
	}

	var isDefault int
	err = s.db.QueryRowContext(ctx, `SELECT is_default FROM branches WHERE id = ?`, key).Scan(&isDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("%w: %q", records.ErrBranchNotFound, id)
	}
	if err != nil {
		return 0, false, fmt.Errorf("get branch %s: %w", id, err)
	}
	return key, isDefault == 1, nil
}

// ensureNameFree fails when another branch (other than exceptID) already uses name.
func (s *Store) ensureNameFree(ctx context.Context, name string, exceptID int64) error {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM branches WHERE name = ? COLLATE NOCASE AND id != ?`, name, exceptID,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("check branch name: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %q", records.ErrBranchExists, name)
	}
	return nil
}
