package stats

import (
	"fmt"
	"slices"

	"streakboard/internal/records"
)

// ComputeStreak returns the current and longest approval streaks for a category.
//
// Records are walked newest to oldest. Current counts the leading run of approvals,
// Longest the best run anywhere in the sequence. Each record is one unit of a streak
// regardless of the calendar gap to its neighbour. Records without a date are ignored.
func ComputeStreak(recs []records.Record, c records.Category) (Streak, error) {
	if err := c.Validate(); err != nil {
		return Streak{}, fmt.Errorf("compute streak: %w", err)
	}
	return computeStreak(recs, c), nil
}

func computeStreak(recs []records.Record, c records.Category) Streak {
	sorted := newestFirst(recs)

	var s Streak
	run := 0
	leading := true
	for _, r := range sorted {
		if !IsSuccessful(c, r.Status(c)) {
			leading = false
			run = 0
			continue
		}
		run++
		if leading {
			s.Current = run
		}
		s.Longest = max(s.Longest, run)
	}
	return s
}

// newestFirst returns a dated copy of recs sorted by calendar day descending.
// Records sharing a day keep their input order.
func newestFirst(recs []records.Record) []records.Record {
	out := dated(recs)
	slices.SortStableFunc(out, func(a, b records.Record) int {
		return records.TruncateDay(b.Date).Compare(records.TruncateDay(a.Date))
	})
	return out
}

// dated copies the records that carry a date. The input is never mutated.
func dated(recs []records.Record) []records.Record {
	out := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if r.HasDate() {
			out = append(out, r)
		}
	}
	return out
}

// CountUndated returns how many records lack a date and are skipped by the engine.
func CountUndated(recs []records.Record) int {
	n := 0
	for _, r := range recs {
		if !r.HasDate() {
			n++
		}
	}
	return n
}
