package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"streakboard/internal/records"
	"streakboard/internal/stats"
)

// Request selects the slice of history a snapshot is built from.
// An empty BranchID means all branches; an empty Range falls back to the
// service default.
type Request struct {
	BranchID string `json:"branchId,omitempty"`
	Range    string `json:"range,omitempty"`
}

// Snapshot is everything the dashboard shows for one request.
type Snapshot struct {
	Range        stats.DateRange                `json:"range"`
	BranchID     string                         `json:"branchId,omitempty"`
	GeneratedAt  time.Time                      `json:"generatedAt"`
	Since        *time.Time                     `json:"since,omitempty"`
	RecordCount  int                            `json:"recordCount"`
	Undated      int                            `json:"undated,omitempty"`
	Metrics      stats.DashboardMetrics         `json:"metrics"`
	History      []stats.SubmissionHistoryPoint `json:"history"`
	Branches     []stats.BranchStreakSummary    `json:"branches"`
	Averages     stats.BranchAverages           `json:"averages"`
	Leaderboard  []stats.BranchStreakSummary    `json:"leaderboard"`
	BranchLookup map[string]string              `json:"-"`
}

// BranchName resolves a branch id to its display name, falling back to the id.
func (s *Snapshot) BranchName(id string) string {
	if name, ok := s.BranchLookup[id]; ok {
		return name
	}
	return id
}

// Service fetches records and branches and runs the engine over them.
type Service struct {
	repo         records.Repository
	dir          records.BranchDirectory
	now          func() time.Time
	defaultRange stats.DateRange
}

type Option func(*Service)

// WithClock overrides the clock used to resolve date ranges.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDefaultRange sets the range used when a request carries none.
func WithDefaultRange(r stats.DateRange) Option {
	return func(s *Service) {
		if r != "" {
			s.defaultRange = r
		}
	}
}

func NewService(repo records.Repository, dir records.BranchDirectory, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		dir:          dir,
		now:          time.Now,
		defaultRange: stats.Range30Days,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build computes a dashboard snapshot for req.
func (s *Service) Build(ctx context.Context, req Request) (*Snapshot, error) {
	// 1. Resolve the window
	rng, err := stats.ParseDateRange(req.Range, s.defaultRange)
	if err != nil {
		return nil, err
	}
	now := s.now()
	since := rng.Since(now)
	branchID := strings.TrimSpace(req.BranchID)

	// 2. Fetch records and branches concurrently
	var recs []records.Record
	var branches []records.Branch
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recs, err = s.repo.Fetch(gctx, records.Filter{BranchID: branchID, Since: since})
		if err != nil {
			return fmt.Errorf("fetch records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		branches, err = s.dir.List(gctx)
		if err != nil {
			return fmt.Errorf("list branches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookup := make(map[string]string, len(branches))
	for _, b := range branches {
		lookup[b.ID] = b.Name
	}

	// 3. Restrict to the selected branch
	if branchID != "" {
		name, ok := lookup[branchID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", records.ErrBranchNotFound, branchID)
		}
		branches = []records.Branch{{ID: branchID, Name: name}}
	}

	// 4. Report records the engine will skip
	undated := stats.CountUndated(recs)
	if undated > 0 {
		log.Warn().Int("count", undated).Str("branch", branchID).Msg("Skipping records without a date")
	}

	// 5. Compute
	summaries := stats.ComputeBranchStreaks(recs, branches)
	snap := &Snapshot{
		Range:        rng,
		BranchID:     branchID,
		GeneratedAt:  now.UTC(),
		RecordCount:  len(recs) - undated,
		Undated:      undated,
		Metrics:      stats.ComputeDashboardMetrics(recs),
		History:      stats.ComputeSuccessRateSeries(recs),
		Branches:     summaries,
		Averages:     stats.AverageBranches(summaries),
		Leaderboard:  stats.Leaderboard(summaries),
		BranchLookup: lookup,
	}
	if !since.IsZero() {
		snap.Since = &since
	}

	log.Debug().
		Str("range", string(rng)).
		Str("branch", branchID).
		Int("records", snap.RecordCount).
		Int("branches", len(summaries)).
		Msg("Dashboard snapshot built")

	return snap, nil
}
