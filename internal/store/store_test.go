package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streakboard/internal/records"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := records.ParseDate(s)
	require.NoError(t, err)
	return d
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s := newTestStore(t)

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewWithPath(t *testing.T) {
	path := t.TempDir() + "/sub/streakboard.db"

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), "Jabal Amman")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopen: no re-migration, data survives.
	s2, err := New(path)
	require.NoError(t, err)
	defer s2.Close()

	branches, err := s2.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, branches, len(DefaultBranches)+1)
}

// ============================================================
// Branch directory
// ============================================================

func TestBranches_DefaultsSeeded(t *testing.T) {
	s := newTestStore(t)

	branches, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 12)
	assert.Equal(t, records.Branch{ID: "1", Name: "Abdoun"}, branches[0])
	assert.Equal(t, records.Branch{ID: "12", Name: "Rabieh"}, branches[11])
}

func TestBranches_Add(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.Add(ctx, "  Jabal Amman ")
	require.NoError(t, err)
	assert.Equal(t, "13", b.ID)
	assert.Equal(t, "Jabal Amman", b.Name)

	_, err = s.Add(ctx, "jabal amman")
	assert.ErrorIs(t, err, records.ErrBranchExists)

	_, err = s.Add(ctx, "ABDOUN")
	assert.ErrorIs(t, err, records.ErrBranchExists)

	_, err = s.Add(ctx, "   ")
	assert.ErrorIs(t, err, records.ErrInvalidBranch)
}

func TestBranches_Rename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.Rename(ctx, "3", "Seventh Circle")
	require.NoError(t, err)
	assert.Equal(t, "Seventh Circle", b.Name)

	// Same name with different case on the same branch is allowed.
	_, err = s.Rename(ctx, "3", "SEVENTH circle")
	require.NoError(t, err)

	_, err = s.Rename(ctx, "3", "abdali")
	assert.ErrorIs(t, err, records.ErrBranchExists)

	_, err = s.Rename(ctx, "999", "Nowhere")
	assert.ErrorIs(t, err, records.ErrBranchNotFound)

	_, err = s.Rename(ctx, "not-a-number", "Nowhere")
	assert.ErrorIs(t, err, records.ErrBranchNotFound)
}

func TestBranches_Remove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Remove(ctx, "1")
	assert.ErrorIs(t, err, records.ErrDefaultBranch)

	custom, err := s.Add(ctx, "Tla' Al Ali")
	require.NoError(t, err)

	_, err = s.Save(ctx, records.Record{BranchID: custom.ID, Date: day(t, "2024-03-18"), DepositStatus: "approved"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, custom.ID))
	assert.ErrorIs(t, s.Remove(ctx, custom.ID), records.ErrBranchNotFound)

	// Records are a weak reference and survive branch removal.
	recs, err := s.Fetch(ctx, records.Filter{BranchID: custom.ID})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

// ============================================================
// Records
// ============================================================

func TestRecords_SaveNormalizes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, records.Record{
		BranchID:           "2",
		Date:               time.Date(2024, 3, 18, 15, 4, 5, 0, time.UTC),
		DepositStatus:      " Approved ",
		HandoverStatus:     "PENDING",
		InvoiceStatus:      "",
		DepositOdooSession: " POS/2024/0318 ",
		DepositNotes:       "counted twice",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "2024-03-18", saved.Day())
	assert.Equal(t, "approved", saved.DepositStatus)
	assert.Equal(t, "pending", saved.HandoverStatus)
	assert.Equal(t, "POS/2024/0318", saved.DepositOdooSession)
	assert.NotNil(t, saved.DepositUpdatedAt)
	assert.NotNil(t, saved.HandoverUpdatedAt)
	assert.Nil(t, saved.InvoiceUpdatedAt, "empty status should not be stamped")
}

func TestRecords_SaveUpsertsOnBranchAndDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)
	s.now = func() time.Time { return first }

	a, err := s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18"),
		DepositStatus: "pending", HandoverStatus: "approved"})
	require.NoError(t, err)

	s.now = func() time.Time { return second }
	b, err := s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18"),
		DepositStatus: "approved", HandoverStatus: "approved", InvoiceStatus: "missing invoices"})
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID, "same branch and day should update in place")
	assert.Equal(t, "approved", b.DepositStatus)
	require.NotNil(t, b.DepositUpdatedAt)
	assert.True(t, b.DepositUpdatedAt.Equal(second), "changed status is re-stamped")
	require.NotNil(t, b.HandoverUpdatedAt)
	assert.True(t, b.HandoverUpdatedAt.Equal(first), "unchanged status keeps its stamp")
	require.NotNil(t, b.InvoiceUpdatedAt)

	all, err := s.Fetch(ctx, records.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecords_SaveMergesPartialSubmission(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18"),
		HandoverStatus: "approved", HandoverOdooSession: "POS/2024/0318"})
	require.NoError(t, err)

	merged, err := s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18"),
		DepositStatus: "Approved", DepositNotes: "counted twice"})
	require.NoError(t, err)

	assert.Equal(t, "approved", merged.HandoverStatus, "handover kept after a deposit-only save")
	assert.Equal(t, "POS/2024/0318", merged.HandoverOdooSession)
	assert.Equal(t, "approved", merged.DepositStatus)
	assert.Equal(t, "counted twice", merged.DepositNotes)
	assert.Empty(t, merged.InvoiceStatus)

	merged, err = s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18"), InvoiceStatus: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, "approved", merged.HandoverStatus)
	assert.Equal(t, "approved", merged.DepositStatus)
	assert.Equal(t, "rejected", merged.InvoiceStatus)
}

func TestRecords_CorruptDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	good, err := s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18"), DepositStatus: "approved"})
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO records (id, branch_id, date) VALUES ('bad', '1', '18/03/2024')`)
	require.NoError(t, err)

	all, err := s.Fetch(ctx, records.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1, "unreadable row is skipped")
	assert.Equal(t, good.ID, all[0].ID)

	_, err = s.Get(ctx, "bad")
	assert.ErrorIs(t, err, records.ErrInvalidDate)
}

func TestRecords_SaveByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r, err := s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18"), DepositStatus: "pending"})
	require.NoError(t, err)

	r.DepositStatus = "rejected"
	r.DepositNotes = "short by 5 JOD"
	updated, err := s.Save(ctx, *r)
	require.NoError(t, err)
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, "rejected", updated.DepositStatus)
	assert.Equal(t, "short by 5 JOD", updated.DepositNotes)

	_, err = s.Save(ctx, records.Record{ID: "missing", BranchID: "1", Date: day(t, "2024-03-19")})
	assert.ErrorIs(t, err, records.ErrRecordNotFound)
}

func TestRecords_SaveRejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(context.Background(), records.Record{BranchID: "1"})
	assert.ErrorIs(t, err, records.ErrInvalidRecord)

	_, err = s.Save(context.Background(), records.Record{Date: day(t, "2024-03-18")})
	assert.ErrorIs(t, err, records.ErrInvalidRecord)
}

func TestRecords_FetchFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, r := range []records.Record{
		{BranchID: "1", Date: day(t, "2024-03-10"), DepositStatus: "approved"},
		{BranchID: "1", Date: day(t, "2024-03-18"), DepositStatus: "approved"},
		{BranchID: "2", Date: day(t, "2024-03-17"), DepositStatus: "rejected"},
		{BranchID: "1", Date: day(t, "2024-03-15"), DepositStatus: "pending"},
	} {
		_, err := s.Save(ctx, r)
		require.NoError(t, err)
	}

	all, err := s.Fetch(ctx, records.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-03-18", all[0].Day(), "newest first")
	assert.Equal(t, "2024-03-10", all[3].Day())

	branch1, err := s.Fetch(ctx, records.Filter{BranchID: "1"})
	require.NoError(t, err)
	assert.Len(t, branch1, 3)

	recent, err := s.Fetch(ctx, records.Filter{Since: day(t, "2024-03-15")})
	require.NoError(t, err)
	assert.Len(t, recent, 3, "since is inclusive")

	both, err := s.Fetch(ctx, records.Filter{BranchID: "2", Since: day(t, "2024-03-15")})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "rejected", both[0].DepositStatus)

	none, err := s.Fetch(ctx, records.Filter{BranchID: "9"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecords_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r, err := s.Save(ctx, records.Record{BranchID: "1", Date: day(t, "2024-03-18")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, r.ID))
	assert.ErrorIs(t, s.Delete(ctx, r.ID), records.ErrRecordNotFound)

	_, err = s.Get(ctx, r.ID)
	assert.ErrorIs(t, err, records.ErrRecordNotFound)
}
