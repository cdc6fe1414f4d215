package visuals

import (
	"fmt"
	"math"
	"strings"

	"streakboard/internal/records"
	"streakboard/internal/stats"
)

// Markdown wraps a mermaid diagram in a fenced code block.
func Markdown(diagram string) string {
	if diagram == "" {
		return ""
	}
	return "```mermaid\n" + diagram + "```"
}

// SuccessRateChart creates a Mermaid xychart-beta line of the daily success rate.
func SuccessRateChart(points []stats.SubmissionHistoryPoint) string {
	if len(points) == 0 {
		return ""
	}

	var labels []string
	var values []string
	for _, p := range points {
		labels = append(labels, quote(shortDay(p.Date)))
		values = append(values, fmt.Sprintf("%.1f", p.SuccessRate))
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Daily Success Rate\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Success Rate (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// BranchStreakChart creates a Mermaid bar chart of the combined current streak per branch.
func BranchStreakChart(summaries []stats.BranchStreakSummary) string {
	if len(summaries) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for _, s := range summaries {
		total := s.Streaks.Sum()
		labels = append(labels, quote(s.BranchName))
		values = append(values, fmt.Sprintf("%d", total))
		if total > maxVal {
			maxVal = total
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Current Streaks by Branch\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Days\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// CategoryRateChart creates a Mermaid bar chart of the success rate per category.
func CategoryRateChart(m stats.DashboardMetrics) string {
	var labels []string
	var values []string
	for _, c := range records.Categories() {
		labels = append(labels, quote(c.Label()))
		values = append(values, fmt.Sprintf("%.1f", m.For(c).SuccessRate()))
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Success Rate by Category\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Success Rate (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// shortDay turns 2024-03-18 into 03-18 to keep the axis readable.
func shortDay(day string) string {
	if len(day) == len(records.DateLayout) {
		return day[5:]
	}
	return day
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "'") + "\""
}
