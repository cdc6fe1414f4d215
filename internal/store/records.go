package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"streakboard/internal/records"
)

const recordColumns = `id, branch_id, date, deposit_status, handover_status, invoice_status,
	deposit_odoo_session, handover_odoo_session, deposit_notes, handover_notes,
	deposit_updated_at, handover_updated_at, invoice_updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Fetch returns the records matching f, newest first.
func (s *Store) Fetch(ctx context.Context, f records.Filter) ([]records.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	var where []string
	var args []any

	if f.BranchID != "" {
		where = append(where, "branch_id = ?")
		args = append(args, f.BranchID)
	}
	if !f.Since.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, f.Since.Format(records.DateLayout))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer rows.Close()

	out := []records.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if errors.Is(err, records.ErrInvalidDate) {
			log.Warn().Err(err).Msg("Skipping record with unreadable date")
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Get returns a single record by id.
func (s *Store) Get(ctx context.Context, id string) (*records.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", records.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return r, nil
}

// Save creates or updates a record.
//
// Without an ID the record is upserted on (branch, date): a second submission for the
// same day is merged into the first, and fields left empty keep their stored value, so
// filing one category does not clear the others. With an ID the record is replaced.
// Statuses are stored trimmed and lower-cased, and a category's UpdatedAt is stamped
// whenever its status changes.
func (s *Store) Save(ctx context.Context, r records.Record) (*records.Record, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r = normalize(r)

	var existing *records.Record
	var err error
	if r.ID != "" {
		existing, err = s.Get(ctx, r.ID)
		if err != nil {
			return nil, err
		}
	} else {
		existing, err = s.findByBranchDate(ctx, r.BranchID, r.Day())
		if err != nil && !errors.Is(err, records.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			r = merge(*existing, r)
		}
	}

	now := s.now().UTC().Truncate(time.Second)
	r.DepositUpdatedAt = stamp(existing, r, records.Deposits, now)
	r.HandoverUpdatedAt = stamp(existing, r, records.Handover, now)
	r.InvoiceUpdatedAt = stamp(existing, r, records.Invoices, now)

	if existing == nil {
		r.ID = uuid.NewString()
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO records (`+recordColumns+`, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.BranchID, r.Day(), r.DepositStatus, r.HandoverStatus, r.InvoiceStatus,
			r.DepositOdooSession, r.HandoverOdooSession, r.DepositNotes, r.HandoverNotes,
			formatTime(r.DepositUpdatedAt), formatTime(r.HandoverUpdatedAt), formatTime(r.InvoiceUpdatedAt),
			now.Format(time.RFC3339),
		)
		if err != nil {
			return nil, fmt.Errorf("insert record: %w", err)
		}
	} else {
		r.ID = existing.ID
		_, err = s.db.ExecContext(ctx,
			`UPDATE records SET branch_id = ?, date = ?, deposit_status = ?, handover_status = ?, invoice_status = ?,
				deposit_odoo_session = ?, handover_odoo_session = ?, deposit_notes = ?, handover_notes = ?,
				deposit_updated_at = ?, handover_updated_at = ?, invoice_updated_at = ?
			WHERE id = ?`,
			r.BranchID, r.Day(), r.DepositStatus, r.HandoverStatus, r.InvoiceStatus,
			r.DepositOdooSession, r.HandoverOdooSession, r.DepositNotes, r.HandoverNotes,
			formatTime(r.DepositUpdatedAt), formatTime(r.HandoverUpdatedAt), formatTime(r.InvoiceUpdatedAt),
			r.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("update record %s: %w", r.ID, err)
		}
	}

	return s.Get(ctx, r.ID)
}

// Delete removes a record by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", records.ErrRecordNotFound, id)
	}
	return nil
}

func (s *Store) findByBranchDate(ctx context.Context, branchID, day string) (*records.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE branch_id = ? AND date = ?`, branchID, day)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: branch %s on %s", records.ErrRecordNotFound, branchID, day)
	}
	if err != nil {
		return nil, fmt.Errorf("find record: %w", err)
	}
	return r, nil
}

func scanRecord(sc rowScanner) (*records.Record, error) {
	var r records.Record
	var day string
	var depositAt, handoverAt, invoiceAt sql.NullString
	err := sc.Scan(
		&r.ID, &r.BranchID, &day, &r.DepositStatus, &r.HandoverStatus, &r.InvoiceStatus,
		&r.DepositOdooSession, &r.HandoverOdooSession, &r.DepositNotes, &r.HandoverNotes,
		&depositAt, &handoverAt, &invoiceAt,
	)
	if err != nil {
		return nil, err
	}
	if r.Date, err = records.ParseDate(day); err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	r.DepositUpdatedAt = parseTime(depositAt)
	r.HandoverUpdatedAt = parseTime(handoverAt)
	r.InvoiceUpdatedAt = parseTime(invoiceAt)
	return &r, nil
}

func normalize(r records.Record) records.Record {
	r.BranchID = strings.TrimSpace(r.BranchID)
	r.Date = records.TruncateDay(r.Date)
	r.DepositStatus = strings.ToLower(strings.TrimSpace(r.DepositStatus))
	r.HandoverStatus = strings.ToLower(strings.TrimSpace(r.HandoverStatus))
	r.InvoiceStatus = strings.ToLower(strings.TrimSpace(r.InvoiceStatus))
	r.DepositOdooSession = strings.TrimSpace(r.DepositOdooSession)
	r.HandoverOdooSession = strings.TrimSpace(r.HandoverOdooSession)
	r.DepositNotes = strings.TrimSpace(r.DepositNotes)
	r.HandoverNotes = strings.TrimSpace(r.HandoverNotes)
	return r
}

// merge fills the empty fields of next from existing.
func merge(existing, next records.Record) records.Record {
	keep := func(dst *string, old string) {
		if *dst == "" {
			*dst = old
		}
	}
	keep(&next.DepositStatus, existing.DepositStatus)
	keep(&next.HandoverStatus, existing.HandoverStatus)
	keep(&next.InvoiceStatus, existing.InvoiceStatus)
	keep(&next.DepositOdooSession, existing.DepositOdooSession)
	keep(&next.HandoverOdooSession, existing.HandoverOdooSession)
	keep(&next.DepositNotes, existing.DepositNotes)
	keep(&next.HandoverNotes, existing.HandoverNotes)
	return next
}

// stamp decides the UpdatedAt of a category after a save.
func stamp(existing *records.Record, next records.Record, c records.Category, now time.Time) *time.Time {
	status := next.Status(c)
	if existing == nil {
		if status == "" {
			return nil
		}
		return &now
	}
	if existing.Status(c) != status {
		return &now
	}
	switch c {
	case records.Deposits:
		return existing.DepositUpdatedAt
	case records.Handover:
		return existing.HandoverUpdatedAt
	default:
		return existing.InvoiceUpdatedAt
	}
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
