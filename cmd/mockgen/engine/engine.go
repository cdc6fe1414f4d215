package engine

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"streakboard/internal/records"
)

type GeneratorConfig struct {
	Scenario string // "steady", "chaos" or "decline"
	Days     int
	Branches []string
	SkipRate float64 // probability a branch files nothing on a day
	Seed     int64
	Now      time.Time
}

// Scenarios lists the supported generator scenarios.
func Scenarios() []string {
	return []string{"steady", "chaos", "decline"}
}

// DefaultBranches returns the ids of the seeded branch directory.
func DefaultBranches() []string {
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = strconv.Itoa(i + 1)
	}
	return ids
}

// Generate produces one record per branch per day for the last cfg.Days days,
// ending today. The same seed always yields the same records.
func Generate(cfg GeneratorConfig) ([]records.Record, error) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", cfg.Days)
	}
	if len(cfg.Branches) == 0 {
		cfg.Branches = DefaultBranches()
	}
	if !knownScenario(cfg.Scenario) {
		return nil, fmt.Errorf("unknown scenario %q (expected steady, chaos or decline)", cfg.Scenario)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	today := records.TruncateDay(cfg.Now.UTC())
	first := today.AddDate(0, 0, -(cfg.Days - 1))

	var out []records.Record
	for i := 0; i < cfg.Days; i++ {
		day := first.AddDate(0, 0, i)
		p := approvalProbability(cfg.Scenario, float64(i)/float64(cfg.Days))

		for _, branch := range cfg.Branches {
			if rng.Float64() < cfg.SkipRate {
				continue
			}
			r := records.Record{
				BranchID:       branch,
				Date:           day,
				DepositStatus:  sampleStatus(rng, records.Deposits, p),
				HandoverStatus: sampleStatus(rng, records.Handover, p),
				InvoiceStatus:  sampleStatus(rng, records.Invoices, p),
			}
			if r.DepositStatus != "" {
				r.DepositOdooSession = fmt.Sprintf("POS/%s/%s", day.Format("20060102"), branch)
			}
			if r.DepositStatus == "rejected" {
				r.DepositNotes = fmt.Sprintf("Cash short by %d JOD", 1+rng.Intn(40))
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// approvalProbability is the chance a single category is approved at the
// given point (0..1) through the generated period.
func approvalProbability(scenario string, progress float64) float64 {
	switch scenario {
	case "chaos":
		return 0.6
	case "decline":
		return 0.95 - 0.45*progress // 0.95 -> 0.50
	}
	return 0.92
}

func sampleStatus(rng *rand.Rand, c records.Category, pApproved float64) string {
	u := rng.Float64()
	if u < pApproved {
		return "approved"
	}
	// Split the remainder between pending, rejected and not yet filed.
	rest := (u - pApproved) / (1 - pApproved)
	switch {
	case rest < 0.3:
		return "pending"
	case rest < 0.9:
		if c == records.Invoices {
			return "missing invoices"
		}
		return "rejected"
	}
	return ""
}

func knownScenario(s string) bool {
	for _, known := range Scenarios() {
		if s == known {
			return true
		}
	}
	return false
}
