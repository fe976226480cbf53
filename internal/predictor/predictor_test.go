package predictor_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
	"github.com/aminaaguel/Guess-My-Emotion/internal/training"
)

var (
	setOnce sync.Once
	testSet *artifact.Set
	setErr  error
)

func trainedSet(t *testing.T) *artifact.Set {
	t.Helper()
	setOnce.Do(func() {
		cfg := training.DefaultConfig()
		cfg.Forest.Trees = 5
		cfg.Logistic.MaxIter = 200
		testSet, _, setErr = training.NewPipeline(cfg, nil).Train(context.Background())
	})
	require.NoError(t, setErr)
	return testSet
}

func loaded(t *testing.T) *predictor.Predictor {
	t.Helper()
	p, err := predictor.FromSet(trainedSet(t))
	require.NoError(t, err)
	return p
}

func TestNilPredictorNotReady(t *testing.T) {
	var p *predictor.Predictor
	assert.False(t, p.Ready())
	assert.Empty(t, p.RunID())

	_, err := p.Predict("hello", classifier.Linear)
	var nl *predictor.ErrModelsNotLoaded
	assert.True(t, errors.As(err, &nl))
}

func TestPredictInvariants(t *testing.T) {
	p := loaded(t)
	texts := []string{"I'm feeling great!", "Too many deadlines", "zzz qqq", ""}

	for _, kind := range classifier.Kinds() {
		for _, text := range texts {
			res, err := p.Predict(text, kind)
			require.NoError(t, err, "%s %q", kind, text)

			assert.Equal(t, kind.DisplayName(), res.ModelUsed)
			assert.Len(t, res.Probabilities, len(p.Classes()))

			var sum, top float64
			for _, v := range res.Probabilities {
				sum += v
				if v > top {
					top = v
				}
			}
			assert.InDelta(t, 1.0, sum, 1e-6)
			assert.Equal(t, res.Probabilities[res.Emotion], res.Confidence)
			assert.Equal(t, top, res.Confidence)
		}
	}
}

func TestPredictUnknownKind(t *testing.T) {
	_, err := loaded(t).Predict("hello", classifier.Kind("svm"))
	assert.Error(t, err)
}

func TestPredictDeterministicAndConcurrent(t *testing.T) {
	p := loaded(t)
	want, err := p.Predict("So much anxiety about work", classifier.TreeEnsemble)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*predictor.PredictionResult, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = p.Predict("So much anxiety about work", classifier.TreeEnsemble)
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	_, err := predictor.Load(context.Background(), artifact.NewDirStore(t.TempDir()))
	var nl *predictor.ErrModelsNotLoaded
	require.True(t, errors.As(err, &nl))

	var inc *artifact.ErrIncomplete
	assert.True(t, errors.As(err, &inc))
}

func TestEnsureArtifactsTrainsOnce(t *testing.T) {
	ctx := context.Background()
	st := artifact.NewDirStore(t.TempDir())

	calls := 0
	train := func(context.Context) (*artifact.Set, error) {
		calls++
		return trainedSet(t), nil
	}

	trained, err := predictor.EnsureArtifacts(ctx, st, train, nil)
	require.NoError(t, err)
	assert.True(t, trained)

	trained, err = predictor.EnsureArtifacts(ctx, st, train, nil)
	require.NoError(t, err)
	assert.False(t, trained)
	assert.Equal(t, 1, calls)

	p, err := predictor.LoadOrTrain(ctx, st, train, nil)
	require.NoError(t, err)
	assert.True(t, p.Ready())
	assert.Equal(t, 1, calls)

	runID, _ := trainedSet(t).RunID()
	assert.Equal(t, runID, p.RunID())
}

func TestEnsureArtifactsTrainingFailure(t *testing.T) {
	ctx := context.Background()
	st := artifact.NewDirStore(t.TempDir())

	boom := errors.New("boom")
	_, err := predictor.EnsureArtifacts(ctx, st, func(context.Context) (*artifact.Set, error) {
		return nil, boom
	}, nil)
	assert.ErrorIs(t, err, boom)

	ok, err := st.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRejectsInconsistentBundle(t *testing.T) {
	b, err := artifact.Unpack(trainedSet(t))
	require.NoError(t, err)

	broken := *b
	broken.Models = map[classifier.Kind]classifier.Model{}
	_, err = predictor.New(&broken)
	var mm *artifact.ErrMismatch
	assert.True(t, errors.As(err, &mm))

	p, err := predictor.New(b)
	require.NoError(t, err)
	assert.Equal(t, b.RunID, p.RunID())
	assert.Equal(t, b.Accuracy[classifier.Linear], p.Accuracy(classifier.Linear))
}
