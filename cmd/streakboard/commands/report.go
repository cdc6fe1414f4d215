package commands

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"streakboard/internal/dashboard"
	"streakboard/internal/report"
)

var reportFlags struct {
	branch  string
	dateRng string
	open    bool
	dir     string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write an HTML dashboard report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := svc.Build(cmd.Context(), dashboard.Request{
			BranchID: reportFlags.branch,
			Range:    reportFlags.dateRng,
		})
		if err != nil {
			return err
		}

		dir := reportFlags.dir
		if dir == "" {
			dir = cfg.ReportDir
		}
		path, err := report.WriteFile(dir, snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)

		if reportFlags.open {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to open report in browser")
			}
		}
		return nil
	},
}

func init() {
	addScopeFlags(reportCmd, &reportFlags.branch, &reportFlags.dateRng)
	reportCmd.Flags().BoolVar(&reportFlags.open, "open", false, "open the report in the default browser")
	reportCmd.Flags().StringVarP(&reportFlags.dir, "output-dir", "o", "", "directory for the report (default from REPORT_DIR)")
	rootCmd.AddCommand(reportCmd)
}
