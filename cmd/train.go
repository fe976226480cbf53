package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/store"
	"github.com/aminaaguel/Guess-My-Emotion/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train both models and save a fresh artifact set",
	Long: `Train the TF-IDF vectorizer, the logistic regression and the random forest
on the optional CSV corpus plus the built-in synthetic phrases, then replace
the stored artifact set. Nothing is written when training fails.`,
	RunE: runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.String("corpus", "", "CSV corpus with text and emotion columns (overrides GME_CORPUS)")
	f.Uint64("seed", 0, "Random seed for the split and the forest (overrides GME_SEED)")
	f.Int("trees", 0, "Number of trees in the forest (overrides GME_TREES)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger, err := newLogger(cmd, "console")
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := training.ConfigFromEnv()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("corpus"); v != "" {
		cfg.CorpusPath = v
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("trees") {
		cfg.Forest.Trees, _ = cmd.Flags().GetInt("trees")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var db *store.Store
	if backend, _ := resolveBackend(cmd); backend == backendSQLite {
		if db, err = openStore(cmd); err != nil {
			return err
		}
		defer db.Close()
	}
	st, err := artifactStore(cmd, db)
	if err != nil {
		return err
	}

	set, res, err := training.NewPipeline(cfg, logger).Train(ctx)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if err := st.Save(ctx, set); err != nil {
		return err
	}
	logger.Info("artifacts saved", zap.String("run_id", res.Bundle.RunID))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Trained on %d examples, evaluated on %d (%s)\n",
		res.TrainSize, res.TestSize, res.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "Emotions: %s\n\n", strings.Join(res.Bundle.Codec.Classes(), ", "))
	for _, kind := range classifier.Kinds() {
		fmt.Fprintf(out, "  %-20s accuracy %.3f\n", kind.DisplayName(), res.Bundle.Accuracy[kind])
	}
	fmt.Fprintf(out, "\nBest model: %s\n", res.Best().DisplayName())
	fmt.Fprintf(out, "Run ID: %s\n", res.Bundle.RunID)
	return nil
}
