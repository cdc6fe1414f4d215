package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"streakboard/internal/dashboard"
	"streakboard/internal/records"
	"streakboard/internal/stats"
)

var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorSubtle  = lipgloss.Color("#414868")
	colorMuted   = lipgloss.Color("#666666")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSubtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", stats.Round1(v))
}

func renderSnapshot(snap *dashboard.Snapshot) string {
	scope := "All branches"
	if snap.BranchID != "" {
		scope = snap.BranchName(snap.BranchID)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Submission dashboard"))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %s · %d records", scope, snap.Range.Label(), snap.RecordCount)))
	sb.WriteString("\n\n")
	sb.WriteString(renderMetrics(snap.Metrics))
	sb.WriteString("\n\n")
	sb.WriteString(renderHistory(snap.History))
	sb.WriteString("\n\n")
	sb.WriteString(renderBranches(snap.Leaderboard, snap.Averages))
	sb.WriteString("\n")
	if snap.Undated > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d record(s) without a date were excluded.", snap.Undated)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderMetrics(m stats.DashboardMetrics) string {
	t := newTable("Category", "Total", "Approved", "Failed", "Success", "Current", "Longest", "Tier")
	for _, c := range records.Categories() {
		cm := m.For(c)
		t.Row(
			c.Label(),
			strconv.Itoa(cm.Total),
			strconv.Itoa(cm.Approved),
			fmt.Sprintf("%d %s", cm.Rejected, strings.ToLower(c.RejectedLabel())),
			pct(cm.SuccessRate()),
			strconv.Itoa(cm.CurrentStreak),
			strconv.Itoa(cm.LongestStreak),
			string(stats.TierFor(cm.CurrentStreak)),
		)
	}
	return t.String()
}

func renderHistory(points []stats.SubmissionHistoryPoint) string {
	if len(points) == 0 {
		return mutedStyle.Render("No submissions in this period.")
	}
	t := newTable("Date", "Success rate")
	for _, p := range points {
		t.Row(p.Date, pct(p.SuccessRate))
	}
	return t.String()
}

func renderBranches(summaries []stats.BranchStreakSummary, avg stats.BranchAverages) string {
	t := newTable("ID", "Branch", "Handover", "Deposits", "Invoices", "Success", "Records")
	for _, s := range summaries {
		t.Row(
			s.BranchID,
			s.BranchName,
			strconv.Itoa(s.Streaks.Handover),
			strconv.Itoa(s.Streaks.Deposits),
			strconv.Itoa(s.Streaks.Invoices),
			pct(s.SuccessRate),
			strconv.Itoa(s.RecordCount),
		)
	}
	if avg.BranchCount > 1 {
		t.Row(
			"",
			"Average",
			strconv.Itoa(avg.Streaks.Handover),
			strconv.Itoa(avg.Streaks.Deposits),
			strconv.Itoa(avg.Streaks.Invoices),
			pct(avg.SuccessRate),
			"",
		)
	}
	return t.String()
}

func renderBranchList(branches []records.Branch) string {
	t := newTable("ID", "Name")
	for _, b := range branches {
		t.Row(b.ID, b.Name)
	}
	return t.String()
}

func renderRecords(recs []records.Record, names map[string]string) string {
	if len(recs) == 0 {
		return mutedStyle.Render("No records found.")
	}
	t := newTable("Date", "Branch", "Handover", "Deposit", "Invoice", "ID")
	for _, r := range recs {
		name := names[r.BranchID]
		if name == "" {
			name = r.BranchID
		}
		t.Row(r.Day(), name, dash(r.HandoverStatus), dash(r.DepositStatus), dash(r.InvoiceStatus), r.ID)
	}
	return t.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
