package stats

import "streakboard/internal/records"

// Streak holds the consecutive-approval runs for one category.
type Streak struct {
	Current int `json:"currentStreak"`
	Longest int `json:"longestStreak"`
}

// CategoryMetrics is the per-category performance bundle shown on the dashboard.
type CategoryMetrics struct {
	Total         int `json:"total"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// SuccessRate is the approved share of all records in percent (0 when empty).
func (m CategoryMetrics) SuccessRate() float64 {
	return Percentage(m.Approved, m.Total)
}

// DashboardMetrics maps the three fixed categories to their metrics.
type DashboardMetrics struct {
	Handover CategoryMetrics `json:"handover"`
	Deposits CategoryMetrics `json:"deposits"`
	Invoices CategoryMetrics `json:"invoices"`
}

// For returns the metrics of a category. Unknown categories yield zero metrics.
func (d DashboardMetrics) For(c records.Category) CategoryMetrics {
	switch c {
	case records.Handover:
		return d.Handover
	case records.Deposits:
		return d.Deposits
	case records.Invoices:
		return d.Invoices
	}
	return CategoryMetrics{}
}

// SubmissionHistoryPoint is one day of the success-rate series.
type SubmissionHistoryPoint struct {
	Date        string  `json:"date"`        // YYYY-MM-DD
	SuccessRate float64 `json:"successRate"` // 0..100
}

// CategoryStreaks holds one current-streak value per category.
type CategoryStreaks struct {
	Handover int `json:"handover"`
	Deposits int `json:"deposits"`
	Invoices int `json:"invoices"`
}

// For returns the streak of a category.
func (s CategoryStreaks) For(c records.Category) int {
	switch c {
	case records.Handover:
		return s.Handover
	case records.Deposits:
		return s.Deposits
	case records.Invoices:
		return s.Invoices
	}
	return 0
}

// Sum adds up the three category streaks.
func (s CategoryStreaks) Sum() int {
	return s.Handover + s.Deposits + s.Invoices
}

// BranchStreakSummary is the per-branch rollup of streaks and overall success rate.
type BranchStreakSummary struct {
	BranchID    string          `json:"branchId"`
	BranchName  string          `json:"branchName"`
	Streaks     CategoryStreaks `json:"streaks"`
	SuccessRate float64         `json:"successRate"`
	RecordCount int             `json:"recordCount"`
}

// BranchAverages summarises a set of branch rollups.
type BranchAverages struct {
	BranchCount int             `json:"branchCount"`
	Streaks     CategoryStreaks `json:"streaks"`
	SuccessRate float64         `json:"successRate"`
}
