package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"streakboard/internal/dashboard"
	"streakboard/internal/export"
)

var dashboardFlags struct {
	branch  string
	dateRng string
	asJSON  bool
	asCSV   bool
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show metrics, daily success rate and branch streaks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := svc.Build(cmd.Context(), dashboard.Request{
			BranchID: dashboardFlags.branch,
			Range:    dashboardFlags.dateRng,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case dashboardFlags.asJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		case dashboardFlags.asCSV:
			return export.WriteBranchStreaksCSV(out, snap.Leaderboard)
		}

		_, err = fmt.Fprint(out, renderSnapshot(snap))
		return err
	},
}

func addScopeFlags(cmd *cobra.Command, branch, rng *string) {
	cmd.Flags().StringVarP(branch, "branch", "b", "", "restrict to one branch ID")
	cmd.Flags().StringVarP(rng, "range", "r", "", "date range: 7d, 30d, 90d or all (default from DEFAULT_RANGE)")
}

func init() {
	addScopeFlags(dashboardCmd, &dashboardFlags.branch, &dashboardFlags.dateRng)
	dashboardCmd.Flags().BoolVar(&dashboardFlags.asJSON, "json", false, "print the snapshot as JSON")
	dashboardCmd.Flags().BoolVar(&dashboardFlags.asCSV, "csv", false, "print branch streaks as CSV")
	dashboardCmd.MarkFlagsMutuallyExclusive("json", "csv")
	rootCmd.AddCommand(dashboardCmd)
}
