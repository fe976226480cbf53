package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the round history",
	Long: `Delete every recorded round. The live scoreboard of a running game is not
affected; use the RESET SCORE menu item or POST /reset for that.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete history without --yes")
		}

		db, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.RoundRepo().ClearRounds(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d rounds.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
