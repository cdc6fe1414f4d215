package stats

import (
	"fmt"

	"streakboard/internal/records"
)

// ComputeCategoryMetrics counts approvals and rejections for a category and attaches
// its streaks. Every dated record counts toward Total whether or not the category
// status is filled in, so Approved + Rejected may be less than Total.
func ComputeCategoryMetrics(recs []records.Record, c records.Category) (CategoryMetrics, error) {
	if err := c.Validate(); err != nil {
		return CategoryMetrics{}, fmt.Errorf("compute category metrics: %w", err)
	}
	return computeCategoryMetrics(dated(recs), c), nil
}

func computeCategoryMetrics(recs []records.Record, c records.Category) CategoryMetrics {
	m := CategoryMetrics{Total: len(recs)}
	for _, r := range recs {
		status := r.Status(c)
		if IsSuccessful(c, status) {
			m.Approved++
		} else if IsRejected(c, status) {
			m.Rejected++
		}
	}

	streak := computeStreak(recs, c)
	m.CurrentStreak = streak.Current
	m.LongestStreak = streak.Longest
	return m
}

// ComputeDashboardMetrics builds the metrics of all three categories independently.
func ComputeDashboardMetrics(recs []records.Record) DashboardMetrics {
	usable := dated(recs)
	return DashboardMetrics{
		Handover: computeCategoryMetrics(usable, records.Handover),
		Deposits: computeCategoryMetrics(usable, records.Deposits),
		Invoices: computeCategoryMetrics(usable, records.Invoices),
	}
}
