package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"streakboard/internal/export"
	"streakboard/internal/records"
	"streakboard/internal/stats"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage daily submission records",
}

var saveFlags struct {
	id              string
	branch          string
	date            string
	deposit         string
	handover        string
	invoice         string
	depositSession  string
	handoverSession string
	depositNotes    string
	handoverNotes   string
}

var recordSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update the record of a branch for one day",
	Example: `  streakboard record save --branch 3 --deposit approved --handover approved --invoice "missing invoices"
  streakboard record save --branch 3 --date 2024-03-18 --deposit rejected --deposit-notes "short by 5 JOD"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := records.TruncateDay(time.Now())
		if saveFlags.date != "" {
			var err error
			if day, err = records.ParseDate(saveFlags.date); err != nil {
				return err
			}
		}

		if err := ensureBranch(cmd.Context(), saveFlags.branch); err != nil {
			return err
		}

		saved, err := db.Save(cmd.Context(), records.Record{
			ID:                  saveFlags.id,
			BranchID:            saveFlags.branch,
			Date:                day,
			DepositStatus:       saveFlags.deposit,
			HandoverStatus:      saveFlags.handover,
			InvoiceStatus:       saveFlags.invoice,
			DepositOdooSession:  saveFlags.depositSession,
			HandoverOdooSession: saveFlags.handoverSession,
			DepositNotes:        saveFlags.depositNotes,
			HandoverNotes:       saveFlags.handoverNotes,
		})
		if err != nil {
			return err
		}

		log.Info().Str("id", saved.ID).Str("branch", saved.BranchID).Str("date", saved.Day()).Msg("Record saved")
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved record %s for branch %s on %s\n", saved.ID, saved.BranchID, saved.Day())
		return err
	},
}

var listFlags struct {
	branch  string
	dateRng string
	limit   int
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, names, err := fetchRecords(cmd.Context(), listFlags.branch, listFlags.dateRng)
		if err != nil {
			return err
		}
		if listFlags.limit > 0 && len(recs) > listFlags.limit {
			recs = recs[:listFlags.limit]
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderRecords(recs, names))
		return err
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		log.Info().Str("id", args[0]).Msg("Record deleted")
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %s\n", args[0])
		return err
	},
}

var exportFlags struct {
	branch  string
	dateRng string
	format  string
	output  string
}

var recordExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records as CSV, JSON or JSONL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, names, err := fetchRecords(cmd.Context(), exportFlags.branch, exportFlags.dateRng)
		if err != nil {
			return err
		}

		format := export.Format(exportFlags.format)
		if exportFlags.output == "" {
			return export.WriteRecords(cmd.OutOrStdout(), format, recs, names)
		}
		if format == export.FormatJSONL {
			return export.SaveRecordsJSONL(exportFlags.output, recs)
		}

		f, err := os.Create(exportFlags.output)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		if err := export.WriteRecords(f, format, recs, names); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Str("path", exportFlags.output).Int("count", len(recs)).Msg("Records exported")
		return nil
	},
}

var recordImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import records from a JSONL file (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var recs []records.Record
		var err error
		if args[0] == "-" {
			recs, err = export.ReadRecordsJSONL(cmd.InOrStdin())
		} else {
			recs, err = export.LoadRecordsJSONL(args[0])
		}
		if err != nil {
			return err
		}

		imported, skipped, err := importRecords(cmd.Context(), recs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s), skipped %d\n", imported, skipped)
		return err
	},
}

// importRecords upserts recs by branch and day. Imported ids are discarded.
func importRecords(ctx context.Context, recs []records.Record) (imported, skipped int, err error) {
	for _, r := range recs {
		r.ID = ""
		if err := r.Validate(); err != nil {
			log.Warn().Err(err).Str("branch", r.BranchID).Msg("Skipping record")
			skipped++
			continue
		}
		if _, err := db.Save(ctx, r); err != nil {
			return imported, skipped, fmt.Errorf("import record for branch %s on %s: %w", r.BranchID, r.Day(), err)
		}
		imported++
	}
	log.Info().Int("imported", imported).Int("skipped", skipped).Msg("Import finished")
	return imported, skipped, nil
}

func fetchRecords(ctx context.Context, branchID, rng string) ([]records.Record, map[string]string, error) {
	dateRange, err := stats.ParseDateRange(rng, stats.RangeAll)
	if err != nil {
		return nil, nil, err
	}
	recs, err := db.Fetch(ctx, records.Filter{BranchID: branchID, Since: dateRange.Since(time.Now())})
	if err != nil {
		return nil, nil, err
	}
	branches, err := db.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[string]string, len(branches))
	for _, b := range branches {
		names[b.ID] = b.Name
	}
	return recs, names, nil
}

func ensureBranch(ctx context.Context, id string) error {
	branches, err := db.List(ctx)
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

func init() {
	f := recordSaveCmd.Flags()
	f.StringVar(&saveFlags.id, "id", "", "existing record ID to update")
	f.StringVarP(&saveFlags.branch, "branch", "b", "", "branch ID")
	f.StringVarP(&saveFlags.date, "date", "d", "", "calendar day YYYY-MM-DD (default today)")
	f.StringVar(&saveFlags.deposit, "deposit", "", "deposit status")
	f.StringVar(&saveFlags.handover, "handover", "", "handover status")
	f.StringVar(&saveFlags.invoice, "invoice", "", "invoice status")
	f.StringVar(&saveFlags.depositSession, "deposit-session", "", "Odoo session of the deposit")
	f.StringVar(&saveFlags.handoverSession, "handover-session", "", "Odoo session of the handover")
	f.StringVar(&saveFlags.depositNotes, "deposit-notes", "", "deposit notes")
	f.StringVar(&saveFlags.handoverNotes, "handover-notes", "", "handover notes")
	_ = recordSaveCmd.MarkFlagRequired("branch")

	recordListCmd.Flags().StringVarP(&listFlags.branch, "branch", "b", "", "restrict to one branch ID")
	recordListCmd.Flags().StringVarP(&listFlags.dateRng, "range", "r", "all", "date range: 7d, 30d, 90d or all")
	recordListCmd.Flags().IntVarP(&listFlags.limit, "limit", "n", 50, "maximum rows to show (0 for all)")

	recordExportCmd.Flags().StringVarP(&exportFlags.branch, "branch", "b", "", "restrict to one branch ID")
	recordExportCmd.Flags().StringVarP(&exportFlags.dateRng, "range", "r", "all", "date range: 7d, 30d, 90d or all")
	recordExportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "csv", "csv, json or jsonl")
	recordExportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file (default stdout)")

	recordCmd.AddCommand(recordSaveCmd, recordListCmd, recordDeleteCmd, recordExportCmd, recordImportCmd)
	rootCmd.AddCommand(recordCmd)
}
