package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streakboard/internal/dashboard"
	"streakboard/internal/stats"
)

func snapshot() *dashboard.Snapshot {
	branches := []stats.BranchStreakSummary{
		{BranchID: "1", BranchName: "Abdoun", Streaks: stats.CategoryStreaks{Handover: 12, Deposits: 2, Invoices: 1}, SuccessRate: 50, RecordCount: 2},
		{BranchID: "2", BranchName: "Abdali", Streaks: stats.CategoryStreaks{Handover: 1, Deposits: 1, Invoices: 1}, SuccessRate: 100, RecordCount: 1},
	}
	return &dashboard.Snapshot{
		Range:       stats.Range30Days,
		GeneratedAt: time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
		RecordCount: 3,
		Metrics: stats.DashboardMetrics{
			Handover: stats.CategoryMetrics{Total: 3, Approved: 3, CurrentStreak: 3, LongestStreak: 3},
			Deposits: stats.CategoryMetrics{Total: 3, Approved: 2, Rejected: 1, CurrentStreak: 1, LongestStreak: 1},
			Invoices: stats.CategoryMetrics{Total: 3, Approved: 2, Rejected: 1},
		},
		History: []stats.SubmissionHistoryPoint{
			{Date: "2024-03-18", SuccessRate: 100},
			{Date: "2024-03-19", SuccessRate: 50},
		},
		Branches:     branches,
		Averages:     stats.AverageBranches(branches),
		Leaderboard:  stats.Leaderboard(branches),
		BranchLookup: map[string]string{"1": "Abdoun", "2": "Abdali"},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, snapshot()))
	html := buf.String()

	assert.Contains(t, html, "All branches")
	assert.Contains(t, html, "Last 30 days")
	assert.Contains(t, html, "Missing invoices: 1")
	assert.Contains(t, html, "66.7%")
	assert.Contains(t, html, `<pre class="mermaid">`)
	assert.Contains(t, html, "<td>2024-03-19</td>")
	assert.Contains(t, html, "<td>hot</td>", "Abdoun's 12-day handover streak")

	// Leaderboard order: Abdali (100%) before Abdoun (50%).
	assert.Less(t, strings.Index(html, "<td>Abdali</td>"), strings.Index(html, "<td>Abdoun</td>"))
}

func TestRender_EmptyHistory(t *testing.T) {
	snap := snapshot()
	snap.History = []stats.SubmissionHistoryPoint{}
	snap.BranchID = "2"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, snap))
	assert.Contains(t, buf.String(), "No submissions in this period.")
	assert.Contains(t, buf.String(), "Abdali &middot;")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteFile(dir, snapshot())
	require.NoError(t, err)
	assert.Equal(t, "streakboard-all-30d-20240331-120000.html", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}
