package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/app"
	"github.com/aminaaguel/Guess-My-Emotion/internal/game"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play rounds in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().String("model", "", "Model to play against: linear or tree_ensemble (default tree_ensemble)")
}

// runPlay opens the store, makes sure artifacts exist and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// Logs would corrupt the alt screen; only errors are kept.
	logger, err := newLogger(cmd, "console")
	if err != nil {
		return err
	}
	logger = logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	defer logger.Sync()

	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := artifactStore(cmd, db)
	if err != nil {
		return err
	}

	kind, err := modelFlag(cmd)
	if err != nil {
		return err
	}

	if ok, _ := st.Exists(ctx); !ok {
		fmt.Fprintln(os.Stderr, "Models not found. Training models...")
	}
	p, err := predictor.LoadOrTrain(ctx, st, trainFunc(logger), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Models not loaded:", err)
		fmt.Fprintln(os.Stderr, "Rounds will be unavailable.")
	}

	svc := game.NewService(p, game.Options{
		DefaultModel: kind,
		Recorder:     db.RoundRepo(),
		Logger:       logger,
	})
	return app.Run(app.Options{Service: svc, Rounds: db.RoundRepo()})
}
