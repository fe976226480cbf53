package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show round history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.RoundRepo().RoundStats(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if stats.Rounds == 0 {
			fmt.Fprintln(out, "No rounds played yet.")
			return nil
		}

		fmt.Fprintf(out, "Rounds:   %d over %d sessions\n", stats.Rounds, stats.Sessions)
		fmt.Fprintf(out, "AI wins:  %d (%.0f%%)\n", stats.AICorrect, pct(stats.AICorrect, stats.Rounds))
		fmt.Fprintf(out, "You won:  %d\n\n", stats.UserWins())

		fmt.Fprintf(out, "%-10s  %6s  %8s\n", "Emotion", "Rounds", "AI right")
		fmt.Fprintln(out, strings.Repeat("─", 28))
		for _, e := range stats.ByEmotion {
			fmt.Fprintf(out, "%-10s  %6d  %7.0f%%\n", e.Emotion, e.Rounds, pct(e.AICorrect, e.Rounds))
		}
		return nil
	},
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
