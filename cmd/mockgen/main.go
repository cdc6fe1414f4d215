package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"streakboard/cmd/mockgen/engine"
	"streakboard/internal/export"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, chaos, decline")
	days := flag.Int("days", 90, "Number of days of history to generate")
	branches := flag.String("branches", "", "Comma-separated branch IDs (default: the twelve seeded branches)")
	skip := flag.Float64("skip", 0.05, "Probability that a branch files nothing on a given day")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	out := flag.String("out", "./.cache/records.jsonl", "Output JSONL file")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Days:     *days,
		SkipRate: *skip,
		Seed:     *seed,
		Now:      time.Now(),
	}
	if *branches != "" {
		for _, id := range strings.Split(*branches, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.Branches = append(cfg.Branches, id)
			}
		}
	}

	fmt.Printf("Generating scenario '%s' (Days: %d, Seed: %d) to %s...\n", cfg.Scenario, cfg.Days, cfg.Seed, *out)

	recs, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate mock data: %v\n", err)
		os.Exit(1)
	}

	if err := export.SaveRecordsJSONL(*out, recs); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. %d records written; load them with 'streakboard record import %s'.\n", len(recs), *out)
}
