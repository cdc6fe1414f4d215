package stats

import (
	"slices"
	"time"

	"streakboard/internal/records"
)

// ComputeSuccessRateSeries returns one point per distinct calendar date in recs,
// oldest first. A record succeeds only when all three categories are approved.
// Dates without records are not synthesized.
func ComputeSuccessRateSeries(recs []records.Record) []SubmissionHistoryPoint {
	type bucket struct {
		day        time.Time
		total      int
		successful int
	}

	buckets := make(map[string]*bucket)
	for _, r := range dated(recs) {
		day := records.TruncateDay(r.Date)
		key := day.Format(records.DateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: day}
			buckets[key] = b
		}
		b.total++
		if IsOverallSuccessful(r) {
			b.successful++
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		if b.total == 0 {
			continue
		}
		ordered = append(ordered, b)
	}
	slices.SortFunc(ordered, func(a, b *bucket) int {
		return a.day.Compare(b.day)
	})

	points := make([]SubmissionHistoryPoint, 0, len(ordered))
	for _, b := range ordered {
		points = append(points, SubmissionHistoryPoint{
			Date:        b.day.Format(records.DateLayout),
			SuccessRate: Percentage(b.successful, b.total),
		})
	}
	return points
}
