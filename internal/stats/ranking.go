package stats

import (
	"cmp"
	"math"
	"slices"

	"streakboard/internal/records"
)

// ComputeBranchStreaks rolls records up per branch, keeping the order of branches.
// A branch without records gets zero streaks and a zero success rate.
func ComputeBranchStreaks(recs []records.Record, branches []records.Branch) []BranchStreakSummary {
	byBranch := make(map[string][]records.Record)
	for _, r := range dated(recs) {
		byBranch[r.BranchID] = append(byBranch[r.BranchID], r)
	}

	summaries := make([]BranchStreakSummary, 0, len(branches))
	for _, b := range branches {
		own := byBranch[b.ID]

		successful := 0
		for _, r := range own {
			if IsOverallSuccessful(r) {
				successful++
			}
		}

		summaries = append(summaries, BranchStreakSummary{
			BranchID:   b.ID,
			BranchName: b.Name,
			Streaks: CategoryStreaks{
				Handover: computeStreak(own, records.Handover).Current,
				Deposits: computeStreak(own, records.Deposits).Current,
				Invoices: computeStreak(own, records.Invoices).Current,
			},
			SuccessRate: Percentage(successful, len(own)),
			RecordCount: len(own),
		})
	}
	return summaries
}

// AverageBranches computes the rounded mean streak per category and the mean
// success rate across branch rollups.
func AverageBranches(summaries []BranchStreakSummary) BranchAverages {
	avg := BranchAverages{BranchCount: len(summaries)}
	if len(summaries) == 0 {
		return avg
	}

	var sum CategoryStreaks
	rate := 0.0
	for _, s := range summaries {
		sum.Handover += s.Streaks.Handover
		sum.Deposits += s.Streaks.Deposits
		sum.Invoices += s.Streaks.Invoices
		rate += s.SuccessRate
	}

	n := float64(len(summaries))
	avg.Streaks = CategoryStreaks{
		Handover: int(math.Round(float64(sum.Handover) / n)),
		Deposits: int(math.Round(float64(sum.Deposits) / n)),
		Invoices: int(math.Round(float64(sum.Invoices) / n)),
	}
	avg.SuccessRate = rate / n
	return avg
}

// Leaderboard returns a copy of summaries ordered best first: success rate, then
// combined streak length, then name.
func Leaderboard(summaries []BranchStreakSummary) []BranchStreakSummary {
	out := slices.Clone(summaries)
	slices.SortStableFunc(out, func(a, b BranchStreakSummary) int {
		if c := cmp.Compare(b.SuccessRate, a.SuccessRate); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Streaks.Sum(), a.Streaks.Sum()); c != 0 {
			return c
		}
		return cmp.Compare(a.BranchName, b.BranchName)
	})
	return out
}
