package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"streakboard/internal/records"
	"streakboard/internal/stats"
)

func rangeEnum() []any {
	var out []any
	for _, r := range stats.DateRanges() {
		out = append(out, string(r))
	}
	return out
}

func categoryEnum() []any {
	var out []any
	for _, c := range records.Categories() {
		out = append(out, string(c))
	}
	return out
}

func str(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func object(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	if props == nil {
		props = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}

func scopeProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"branch_id": str("Optional branch ID. Omit to aggregate over all branches."),
		"range": {
			Type:        "string",
			Description: "Look-back window. Defaults to the configured range (usually 30d).",
			Enum:        rangeEnum(),
		},
	}
}

func (s *Server) registerTools(srv *sdk.Server) {
	sdk.AddTool(srv, &sdk.Tool{
		Name: "get_dashboard",
		Description: "Get the full submission dashboard: per-category metrics, daily success rate history, per-branch streaks, averages and a leaderboard. " +
			"A record is only successful overall when handover, deposits and invoices are all approved.",
		InputSchema: object(scopeProps()),
	}, s.handleGetDashboard)

	metricsProps := scopeProps()
	metricsProps["category"] = &jsonschema.Schema{
		Type:        "string",
		Description: "Optional category. Omit to get all three.",
		Enum:        categoryEnum(),
	}
	sdk.AddTool(srv, &sdk.Tool{
		Name: "get_performance_metrics",
		Description: "Get totals, approvals, rejections, success rate and current/longest approval streaks per submission category. " +
			"Pending or empty statuses count toward the total but are neither approved nor rejected.",
		InputSchema: object(metricsProps),
	}, s.handleGetPerformanceMetrics)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "get_success_rate_history",
		Description: "Get the daily overall success rate (percent of records with all three categories approved), oldest day first. Days without records are omitted.",
		InputSchema: object(scopeProps()),
	}, s.handleGetSuccessRateHistory)

	streakProps := scopeProps()
	streakProps["ranked"] = &jsonschema.Schema{
		Type:        "boolean",
		Description: "Order branches best first (success rate, then combined streak) instead of directory order.",
	}
	sdk.AddTool(srv, &sdk.Tool{
		Name:        "get_branch_streaks",
		Description: "Get the current approval streak per category and the overall success rate for each branch, plus cross-branch averages.",
		InputSchema: object(streakProps),
	}, s.handleGetBranchStreaks)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "list_branches",
		Description: "List all branches with their IDs.",
		InputSchema: object(nil),
	}, s.handleListBranches)

	sdk.AddTool(srv, &sdk.Tool{
		Name: "save_record",
		Description: "Create or update a daily submission record. Without an id, the record for the same branch and date is replaced. " +
			"Statuses are free text, typically approved, pending or rejected; invoices may also be 'missing invoices'.",
		InputSchema: object(map[string]*jsonschema.Schema{
			"id":                    str("Existing record ID to update."),
			"branch_id":             str("Branch ID."),
			"date":                  {Type: "string", Description: "Calendar day (YYYY-MM-DD).", Pattern: `^\d{4}-\d{2}-\d{2}$`},
			"deposit_status":        str("Deposit status."),
			"handover_status":       str("Handover status."),
			"invoice_status":        str("Invoice status."),
			"deposit_odoo_session":  str("Odoo session reference for the deposit."),
			"handover_odoo_session": str("Odoo session reference for the handover."),
			"deposit_notes":         str("Free-form deposit notes."),
			"handover_notes":        str("Free-form handover notes."),
		}, "branch_id", "date"),
	}, s.handleSaveRecord)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "delete_record",
		Description: "Delete a submission record by ID.",
		InputSchema: object(map[string]*jsonschema.Schema{"id": str("Record ID.")}, "id"),
	}, s.handleDeleteRecord)
}
