package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "guess-my-emotion", version)
		fmt.Fprintln(cmd.OutOrStdout(), "artifact format", artifact.FormatVersion)
	},
}
