package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "guess-my-emotion",
	Short: "Emotion guessing game",
	Long: `Guess My Emotion: write a sentence, say which emotion you meant, and see
whether a text classifier can read it. The AI scores when it guesses right,
you score when you fool it.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite history database (overrides GME_DB env var)")
	pf.String("models", "", "Directory holding trained artifacts (overrides GME_MODELS env var)")
	pf.String("artifact-backend", "", "Where artifacts live: dir or sqlite (overrides GME_ARTIFACT_BACKEND, default dir)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides GME_LOG_LEVEL)")
	pf.String("log-format", "", "Log format: console or json (overrides GME_LOG_FORMAT)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
