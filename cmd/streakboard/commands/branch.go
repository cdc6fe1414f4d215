package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Manage branches",
}

var branchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		branches, err := db.List(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderBranchList(branches))
		return err
	},
}

var branchAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := db.Add(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		log.Info().Str("id", b.ID).Str("name", b.Name).Msg("Branch added")
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added branch %s (%s)\n", b.Name, b.ID)
		return err
	},
}

var branchRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a branch",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := db.Rename(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		log.Info().Str("id", b.ID).Str("name", b.Name).Msg("Branch renamed")
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed branch %s to %s\n", b.ID, b.Name)
		return err
	},
}

var branchRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a custom branch (its records are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		log.Info().Str("id", args[0]).Msg("Branch removed")
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed branch %s\n", args[0])
		return err
	},
}

func init() {
	branchCmd.AddCommand(branchListCmd, branchAddCmd, branchRenameCmd, branchRemoveCmd)
	rootCmd.AddCommand(branchCmd)
}
