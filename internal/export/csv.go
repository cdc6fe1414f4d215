package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"streakboard/internal/records"
	"streakboard/internal/stats"
)

var recordHeader = []string{
	"id", "branch_id", "branch_name", "date",
	"deposit_status", "handover_status", "invoice_status",
	"deposit_odoo_session", "handover_odoo_session",
	"deposit_notes", "handover_notes",
}

var streakHeader = []string{
	"branch_id", "branch_name",
	"handover_streak", "deposits_streak", "invoices_streak",
	"success_rate", "records", "tier",
}

// WriteRecordsCSV writes recs with a header row. names maps branch ids to
// display names; unknown ids leave the name column empty.
func WriteRecordsCSV(w io.Writer, recs []records.Record, names map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range recs {
		row := []string{
			r.ID, r.BranchID, names[r.BranchID], r.Day(),
			r.DepositStatus, r.HandoverStatus, r.InvoiceStatus,
			r.DepositOdooSession, r.HandoverOdooSession,
			r.DepositNotes, r.HandoverNotes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBranchStreaksCSV writes one row per branch rollup. The tier column
// reflects the branch's best category streak.
func WriteBranchStreaksCSV(w io.Writer, summaries []stats.BranchStreakSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(streakHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range summaries {
		best := max(s.Streaks.Handover, s.Streaks.Deposits, s.Streaks.Invoices)
		row := []string{
			s.BranchID, s.BranchName,
			strconv.Itoa(s.Streaks.Handover),
			strconv.Itoa(s.Streaks.Deposits),
			strconv.Itoa(s.Streaks.Invoices),
			strconv.FormatFloat(stats.Round1(s.SuccessRate), 'f', 1, 64),
			strconv.Itoa(s.RecordCount),
			string(stats.TierFor(best)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write branch %s: %w", s.BranchID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
