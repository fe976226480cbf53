package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
	"github.com/aminaaguel/Guess-My-Emotion/internal/store"
)

var predictCmd = &cobra.Command{
	Use:   "predict <text>",
	Short: "Classify a sentence without playing a round",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().String("model", "", "Model: linear or tree_ensemble (default tree_ensemble)")
	predictCmd.Flags().Bool("json", false, "Print the result as JSON")
}

// modelFlag parses --model, defaulting to the tree ensemble.
func modelFlag(cmd *cobra.Command) (classifier.Kind, error) {
	v, _ := cmd.Flags().GetString("model")
	if v == "" {
		return classifier.TreeEnsemble, nil
	}
	return classifier.ParseKind(v)
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind, err := modelFlag(cmd)
	if err != nil {
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

	p, err := predictor.Load(ctx, st)
	if err != nil {
		return fmt.Errorf("%w (run `guess-my-emotion train` first)", err)
	}

	text := strings.Join(args, " ")
	res, err := p.Predict(text, kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "%s (%.1f%%) via %s\n\n", res.Emotion, res.Confidence*100, res.ModelUsed)
	labels := make([]string, 0, len(res.Probabilities))
	for l := range res.Probabilities {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		return res.Probabilities[labels[i]] > res.Probabilities[labels[j]]
	})
	for _, l := range labels {
		fmt.Fprintf(out, "  %-10s %6.2f%%\n", l, res.Probabilities[l]*100)
	}
	return nil
}
