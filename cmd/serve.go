package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/game"
	"github.com/aminaaguel/Guess-My-Emotion/internal/httpapi"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP",
	Long: `Serve POST /predict, POST /reset and GET /health. Missing artifacts are
trained once before the listener starts; if loading still fails the server
runs with models_loaded=false and answers /predict with 503.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":5000", "Listen address (overrides GME_ADDR)")
	f.String("model", "", "Default model: linear or tree_ensemble (default tree_ensemble)")
	f.Bool("no-history", false, "Do not record rounds in the history database")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd, "json")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, _ := cmd.Flags().GetString("addr")
	if v := os.Getenv("GME_ADDR"); v != "" && !cmd.Flags().Changed("addr") {
		addr = v
	}
	kind, err := modelFlag(cmd)
	if err != nil {
		return err
	}

	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := artifactStore(cmd, db)
	if err != nil {
		return err
	}

	p, err := predictor.LoadOrTrain(ctx, st, trainFunc(logger), logger)
	if err != nil {
		logger.Error("models not loaded", zap.Error(err))
	} else {
		logger.Info("models loaded", zap.String("run_id", p.RunID()), zap.Strings("emotions", p.Classes()))
	}

	opts := game.Options{DefaultModel: kind, Logger: logger}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		opts.Recorder = db.RoundRepo()
	}
	svc := game.NewService(p, opts)

	return httpapi.NewServer(svc, logger).ListenAndServe(ctx, addr)
}
