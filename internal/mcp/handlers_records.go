package mcp

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"streakboard/internal/records"
	"streakboard/internal/stats"
)

type saveRecordInput struct {
	ID                  string `json:"id,omitempty"`
	BranchID            string `json:"branch_id"`
	Date                string `json:"date"`
	DepositStatus       string `json:"deposit_status,omitempty"`
	HandoverStatus      string `json:"handover_status,omitempty"`
	InvoiceStatus       string `json:"invoice_status,omitempty"`
	DepositOdooSession  string `json:"deposit_odoo_session,omitempty"`
	HandoverOdooSession string `json:"handover_odoo_session,omitempty"`
	DepositNotes        string `json:"deposit_notes,omitempty"`
	HandoverNotes       string `json:"handover_notes,omitempty"`
}

type deleteRecordInput struct {
	ID string `json:"id"`
}

func (s *Server) handleSaveRecord(ctx context.Context, _ *sdk.CallToolRequest, in saveRecordInput) (*sdk.CallToolResult, any, error) {
	day, err := records.ParseDate(in.Date)
	if err != nil {
		logFailure("save_record", err)
		return nil, nil, err
	}

	// Records may only be filed against known branches.
	if err := s.ensureBranch(ctx, in.BranchID); err != nil {
		logFailure("save_record", err)
		return nil, nil, err
	}

	saved, err := s.repo.Save(ctx, records.Record{
		ID:                  in.ID,
		BranchID:            in.BranchID,
		Date:                day,
		DepositStatus:       in.DepositStatus,
		HandoverStatus:      in.HandoverStatus,
		InvoiceStatus:       in.InvoiceStatus,
		DepositOdooSession:  in.DepositOdooSession,
		HandoverOdooSession: in.HandoverOdooSession,
		DepositNotes:        in.DepositNotes,
		HandoverNotes:       in.HandoverNotes,
	})
	if err != nil {
		logFailure("save_record", err)
		return nil, nil, err
	}

	log.Info().Str("id", saved.ID).Str("branch", saved.BranchID).Str("date", saved.Day()).Msg("Record saved")

	var warnings []string
	if !stats.IsOverallSuccessful(*saved) {
		warnings = append(warnings, "Record is not fully approved; streaks for non-approved categories reset.")
	}
	return textResult(s.WrapResponse(saved, "", warnings))
}

func (s *Server) handleDeleteRecord(ctx context.Context, _ *sdk.CallToolRequest, in deleteRecordInput) (*sdk.CallToolResult, any, error) {
	if err := s.repo.Delete(ctx, in.ID); err != nil {
		logFailure("delete_record", err)
		return nil, nil, err
	}
	log.Info().Str("id", in.ID).Msg("Record deleted")
	return textResult(s.WrapResponse(map[string]any{"id": in.ID, "deleted": true}, "", nil))
}

func (s *Server) ensureBranch(ctx context.Context, id string) error {
	branches, err := s.dir.List(ctx)
	if err != nil {
		return err
	}
	for _, b := range branches {
		if b.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", records.ErrBranchNotFound, id)
}

// logFailure records a failed tool call. Caller mistakes log at warn level.
func logFailure(tool string, err error) {
	if isCallerError(err) {
		log.Warn().Err(err).Str("tool", tool).Msg("Tool call rejected")
		return
	}
	log.Error().Err(err).Str("tool", tool).Msg("Tool call failed")
}

func isCallerError(err error) bool {
	for _, target := range []error{
		records.ErrBranchNotFound,
		records.ErrRecordNotFound,
		records.ErrInvalidRecord,
		records.ErrUnknownCategory,
		records.ErrInvalidDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
