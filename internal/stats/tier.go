package stats

// StreakTier buckets a streak length for display.
type StreakTier string

const (
	TierSteady    StreakTier = "steady"
	TierHot       StreakTier = "hot"
	TierBlazing   StreakTier = "blazing"
	TierLegendary StreakTier = "legendary"
)

// TierFor maps a streak length to its tier (10, 20 and 30 day thresholds).
func TierFor(streak int) StreakTier {
	switch {
	case streak >= 30:
		return TierLegendary
	case streak >= 20:
		return TierBlazing
	case streak >= 10:
		return TierHot
	default:
		return TierSteady
	}
}
