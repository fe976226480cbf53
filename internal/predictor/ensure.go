package predictor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
)

// TrainFunc produces a fresh, complete artifact set.
type TrainFunc func(ctx context.Context) (*artifact.Set, error)

// EnsureArtifacts trains and saves a set when st holds no complete one.
// It reports whether training ran. Repeated calls after a successful save
// are no-ops.
func EnsureArtifacts(ctx context.Context, st artifact.Store, train TrainFunc, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ok, err := st.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check artifacts: %w", err)
	}
	if ok {
		logger.Debug("artifacts present, skipping training")
		return false, nil
	}

	logger.Info("no complete artifact set found, training")
	set, err := train(ctx)
	if err != nil {
		return false, fmt.Errorf("train: %w", err)
	}
	if err := st.Save(ctx, set); err != nil {
		return false, err
	}
	runID, _ := set.RunID()
	logger.Info("artifacts saved", zap.String("run_id", runID))
	return true, nil
}

// LoadOrTrain runs EnsureArtifacts and then loads the stored set.
func LoadOrTrain(ctx context.Context, st artifact.Store, train TrainFunc, logger *zap.Logger) (*Predictor, error) {
	if _, err := EnsureArtifacts(ctx, st, train, logger); err != nil {
		return nil, err
	}
	return Load(ctx, st)
}
