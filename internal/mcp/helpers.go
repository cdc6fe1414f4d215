package mcp

import (
	"encoding/json"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"streakboard/internal/dashboard"
	"streakboard/internal/visuals"
)

// ResponseEnvelope is the JSON body of every tool result.
type ResponseEnvelope struct {
	Data     any      `json:"data"`
	Chart    string   `json:"chart,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// WrapResponse builds the envelope for a tool result. chart is a mermaid
// diagram and is only attached when charts are enabled.
func (s *Server) WrapResponse(data any, chart string, warnings []string) ResponseEnvelope {
	env := ResponseEnvelope{Data: data, Warnings: warnings}
	if s.opts.EnableMermaidCharts {
		env.Chart = visuals.Markdown(chart)
	}
	return env
}

func textResult(env ResponseEnvelope) (*sdk.CallToolResult, any, error) {
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode response: %w", err)
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(out)}},
	}, nil, nil
}

func snapshotWarnings(snap *dashboard.Snapshot) []string {
	var warnings []string
	if snap.RecordCount == 0 {
		warnings = append(warnings, fmt.Sprintf("No dated submissions in range %s; all metrics are zero.", snap.Range))
	}
	if snap.Undated > 0 {
		warnings = append(warnings, fmt.Sprintf("%d record(s) without a date were excluded.", snap.Undated))
	}
	return warnings
}
