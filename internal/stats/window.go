package stats

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is a named look-back window selected on the dashboard.
type DateRange string

const (
	Range7Days  DateRange = "7d"
	Range30Days DateRange = "30d"
	Range90Days DateRange = "90d"
	RangeAll    DateRange = "all"
)

// DateRanges lists the supported ranges, shortest first.
func DateRanges() []DateRange {
	return []DateRange{Range7Days, Range30Days, Range90Days, RangeAll}
}

// ParseDateRange resolves a range name. An empty name falls back to def.
func ParseDateRange(s string, def DateRange) (DateRange, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def, nil
	}
	r := DateRange(s)
	for _, known := range DateRanges() {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown date range %q (expected 7d, 30d, 90d or all)", s)
}

// Days returns the length of the window in days, 0 for RangeAll.
func (r DateRange) Days() int {
	switch r {
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	}
	return 0
}

// Since returns the inclusive cutoff day for the range relative to now.
// RangeAll returns the zero time, meaning no cutoff.
func (r DateRange) Since(now time.Time) time.Time {
	days := r.Days()
	if days == 0 {
		return time.Time{}
	}
	return SnapToDay(now).AddDate(0, 0, -days)
}

// Label returns a human-readable name for the range.
func (r DateRange) Label() string {
	if r == RangeAll {
		return "All time"
	}
	return fmt.Sprintf("Last %d days", r.Days())
}

// SnapToDay normalizes a timestamp to the beginning of its day (0:00:00).
func SnapToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
