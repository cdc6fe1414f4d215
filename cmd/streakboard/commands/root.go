package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"streakboard/internal/config"
	"streakboard/internal/dashboard"
	"streakboard/internal/logging"
	"streakboard/internal/store"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
	db      *store.Store
	svc     *dashboard.Service
)

var rootCmd = &cobra.Command{
	Use:   "streakboard",
	Short: "Streakboard tracks daily branch submissions and approval streaks",
	Long: `Streakboard records the daily handover, deposit and invoice submissions of each branch
and derives approval streaks, success rates and branch rankings from them.

Run without a subcommand to start the MCP server on stdio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		db, err = store.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open record store: %w", err)
		}
		svc = dashboard.NewService(db, db, dashboard.WithDefaultRange(cfg.DefaultRange))

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("db", cfg.DBPath).
			Msg("Streakboard starting")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return nil
		}
		return db.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
