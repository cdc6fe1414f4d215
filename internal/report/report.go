package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"streakboard/internal/dashboard"
	"streakboard/internal/records"
	"streakboard/internal/stats"
	"streakboard/internal/visuals"
)

type categoryCard struct {
	Label         string
	RejectedLabel string
	Metrics       stats.CategoryMetrics
	Tier          stats.StreakTier
}

type view struct {
	Title       string
	Snapshot    *dashboard.Snapshot
	Scope       string
	Cards       []categoryCard
	RateChart   string
	StreakChart string
}

var funcs = template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", stats.Round1(v)) },
	"tier": func(s stats.CategoryStreaks) stats.StreakTier {
		return stats.TierFor(max(s.Handover, s.Deposits, s.Invoices))
	},
}

var page = template.Must(template.New("report").Funcs(funcs).Parse(pageTemplate))

// Render writes a standalone HTML report for snap.
func Render(w io.Writer, snap *dashboard.Snapshot) error {
	v := view{
		Title:       "Branch Submission Report",
		Snapshot:    snap,
		Scope:       "All branches",
		RateChart:   visuals.SuccessRateChart(snap.History),
		StreakChart: visuals.BranchStreakChart(snap.Branches),
	}
	if snap.BranchID != "" {
		v.Scope = snap.BranchName(snap.BranchID)
	}
	for _, c := range records.Categories() {
		m := snap.Metrics.For(c)
		v.Cards = append(v.Cards, categoryCard{
			Label:         c.Label(),
			RejectedLabel: c.RejectedLabel(),
			Metrics:       m,
			Tier:          stats.TierFor(m.CurrentStreak),
		})
	}

	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFile renders snap into dir and returns the path of the new file.
func WriteFile(dir string, snap *dashboard.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	scope := "all"
	if snap.BranchID != "" {
		scope = "branch-" + snap.BranchID
	}
	name := fmt.Sprintf("streakboard-%s-%s-%s.html", scope, snap.Range, snap.GeneratedAt.Format("20060102-150405"))
	path := filepath.Join(dir, sanitize(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	if err := Render(f, snap); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}

	log.Info().Str("path", path).Msg("Report written")
	return path, nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
