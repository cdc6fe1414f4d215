package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"streakboard/internal/dashboard"
	"streakboard/internal/records"
	"streakboard/internal/stats"
	"streakboard/internal/visuals"
)

type scopeInput struct {
	BranchID string `json:"branch_id,omitempty"`
	Range    string `json:"range,omitempty"`
}

func (in scopeInput) request() dashboard.Request {
	return dashboard.Request{BranchID: in.BranchID, Range: in.Range}
}

type metricsInput struct {
	BranchID string `json:"branch_id,omitempty"`
	Range    string `json:"range,omitempty"`
	Category string `json:"category,omitempty"`
}

type streaksInput struct {
	BranchID string `json:"branch_id,omitempty"`
	Range    string `json:"range,omitempty"`
	Ranked   bool   `json:"ranked,omitempty"`
}

// CategoryView is the per-category block of get_performance_metrics.
type CategoryView struct {
	Category      records.Category `json:"category"`
	Label         string           `json:"label"`
	Total         int              `json:"total"`
	Approved      int              `json:"approved"`
	Rejected      int              `json:"rejected"`
	RejectedLabel string           `json:"rejectedLabel"`
	SuccessRate   float64          `json:"successRate"`
	CurrentStreak int              `json:"currentStreak"`
	LongestStreak int              `json:"longestStreak"`
	Tier          stats.StreakTier `json:"tier"`
}

func categoryView(c records.Category, m stats.CategoryMetrics) CategoryView {
	return CategoryView{
		Category:      c,
		Label:         c.Label(),
		Total:         m.Total,
		Approved:      m.Approved,
		Rejected:      m.Rejected,
		RejectedLabel: c.RejectedLabel(),
		SuccessRate:   stats.Round1(m.SuccessRate()),
		CurrentStreak: m.CurrentStreak,
		LongestStreak: m.LongestStreak,
		Tier:          stats.TierFor(m.CurrentStreak),
	}
}

func (s *Server) build(ctx context.Context, tool string, req dashboard.Request) (*dashboard.Snapshot, error) {
	snap, err := s.svc.Build(ctx, req)
	if err != nil {
		logFailure(tool, err)
		return nil, err
	}
	return snap, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, _ *sdk.CallToolRequest, in scopeInput) (*sdk.CallToolResult, any, error) {
	snap, err := s.build(ctx, "get_dashboard", in.request())
	if err != nil {
		return nil, nil, err
	}
	return textResult(s.WrapResponse(snap, visuals.SuccessRateChart(snap.History), snapshotWarnings(snap)))
}

func (s *Server) handleGetPerformanceMetrics(ctx context.Context, _ *sdk.CallToolRequest, in metricsInput) (*sdk.CallToolResult, any, error) {
	cats := records.Categories()
	if in.Category != "" {
		c, err := records.ParseCategory(in.Category)
		if err != nil {
			logFailure("get_performance_metrics", err)
			return nil, nil, err
		}
		cats = []records.Category{c}
	}

	snap, err := s.build(ctx, "get_performance_metrics", dashboard.Request{BranchID: in.BranchID, Range: in.Range})
	if err != nil {
		return nil, nil, err
	}

	views := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, categoryView(c, snap.Metrics.For(c)))
	}

	data := map[string]any{
		"range":       snap.Range,
		"recordCount": snap.RecordCount,
		"categories":  views,
	}
	return textResult(s.WrapResponse(data, visuals.CategoryRateChart(snap.Metrics), snapshotWarnings(snap)))
}

func (s *Server) handleGetSuccessRateHistory(ctx context.Context, _ *sdk.CallToolRequest, in scopeInput) (*sdk.CallToolResult, any, error) {
	snap, err := s.build(ctx, "get_success_rate_history", in.request())
	if err != nil {
		return nil, nil, err
	}
	data := map[string]any{
		"range":   snap.Range,
		"history": snap.History,
	}
	return textResult(s.WrapResponse(data, visuals.SuccessRateChart(snap.History), snapshotWarnings(snap)))
}

func (s *Server) handleGetBranchStreaks(ctx context.Context, _ *sdk.CallToolRequest, in streaksInput) (*sdk.CallToolResult, any, error) {
	snap, err := s.build(ctx, "get_branch_streaks", dashboard.Request{BranchID: in.BranchID, Range: in.Range})
	if err != nil {
		return nil, nil, err
	}

	branches := snap.Branches
	if in.Ranked {
		branches = snap.Leaderboard
	}
	data := map[string]any{
		"range":    snap.Range,
		"branches": branches,
		"averages": snap.Averages,
	}
	return textResult(s.WrapResponse(data, visuals.BranchStreakChart(branches), snapshotWarnings(snap)))
}

func (s *Server) handleListBranches(ctx context.Context, _ *sdk.CallToolRequest, _ struct{}) (*sdk.CallToolResult, any, error) {
	branches, err := s.dir.List(ctx)
	if err != nil {
		logFailure("list_branches", err)
		return nil, nil, err
	}
	return textResult(s.WrapResponse(branches, "", nil))
}
