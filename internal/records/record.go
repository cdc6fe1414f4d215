package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a record's calendar day.
const DateLayout = "2006-01-02"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrBranchExists    = errors.New("branch with this name already exists")
	ErrBranchNotFound  = errors.New("branch not found")
	ErrInvalidBranch   = errors.New("invalid branch")
	ErrDefaultBranch   = errors.New("cannot remove default branch")
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrInvalidDate     = errors.New("invalid date")
)

// Record is one branch's daily submission bundle.
// The three statuses are independent of each other.
type Record struct {
	ID       string    `json:"id"`
	BranchID string    `json:"branchId"`
	Date     time.Time `json:"date"`

	DepositStatus  string `json:"depositStatus"`
	HandoverStatus string `json:"handoverStatus"`
	InvoiceStatus  string `json:"invoiceStatus"`

	DepositOdooSession  string `json:"depositOdooSession,omitempty"`
	HandoverOdooSession string `json:"handoverOdooSession,omitempty"`
	DepositNotes        string `json:"depositNotes,omitempty"`
	HandoverNotes       string `json:"handoverNotes,omitempty"`

	// Display only; never used in computation.
	DepositUpdatedAt  *time.Time `json:"depositUpdatedAt,omitempty"`
	HandoverUpdatedAt *time.Time `json:"handoverUpdatedAt,omitempty"`
	InvoiceUpdatedAt  *time.Time `json:"invoiceUpdatedAt,omitempty"`
}

// Status returns the raw status value the record carries for a category.
// Unknown categories yield an empty status.
func (r Record) Status(c Category) string {
	switch c {
	case Handover:
		return r.HandoverStatus
	case Deposits:
		return r.DepositStatus
	case Invoices:
		return r.InvoiceStatus
	}
	return ""
}

// HasDate reports whether the record carries a calendar day.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// Day returns the record's date formatted with DateLayout, or "" when missing.
func (r Record) Day() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format(DateLayout)
}

// Validate checks the fields a repository needs to persist the record.
func (r Record) Validate() error {
	if strings.TrimSpace(r.BranchID) == "" {
		return fmt.Errorf("%w: branch id is required", ErrInvalidRecord)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	return nil
}

// MarshalJSON renders Date as a YYYY-MM-DD day, or "" when missing.
func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(r), Date: r.Day()})
}

// UnmarshalJSON accepts a YYYY-MM-DD day or an RFC 3339 timestamp for Date.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Date = time.Time{}
	if aux.Date == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, aux.Date); err == nil {
		r.Date = TruncateDay(t)
		return nil
	}
	d, err := ParseDate(aux.Date)
	if err != nil {
		return err
	}
	r.Date = d
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar day in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q (expected YYYY-MM-DD): %v", ErrInvalidDate, s, err)
	}
	return d, nil
}

// TruncateDay returns the calendar day of t as midnight UTC. The day is read from
// t's own location, so 2024-03-19T01:00+14:00 stays on the 19th.
func TruncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Branch is an organizational unit that submits one record per day.
type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Filter narrows a record fetch. Zero values mean "no restriction".
type Filter struct {
	BranchID string
	Since    time.Time
}

// Repository is the persistence collaborator for submission records.
// Fetch must return a complete, de-duplicated snapshot for the filter.
type Repository interface {
	Fetch(ctx context.Context, f Filter) ([]Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, r Record) (*Record, error)
	Delete(ctx context.Context, id string) error
}

// BranchDirectory lists and maintains branches.
type BranchDirectory interface {
	List(ctx context.Context) ([]Branch, error)
	Add(ctx context.Context, name string) (*Branch, error)
	Rename(ctx context.Context, id, name string) (*Branch, error)
	Remove(ctx context.Context, id string) error
}
