package stats

import "math"

// Percentage returns 100*part/total, or 0 when total is not positive.
// The result is always finite.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := 100 * float64(part) / float64(total)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// Round1 rounds to one decimal place, the precision the dashboard displays.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
