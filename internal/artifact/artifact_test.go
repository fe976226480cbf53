package artifact_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
	"github.com/aminaaguel/Guess-My-Emotion/internal/training"
)

var (
	bundleOnce sync.Once
	bundle     *artifact.Bundle
	bundleErr  error
)

// testBundle trains once per test binary.
func testBundle(t *testing.T) *artifact.Bundle {
	t.Helper()
	bundleOnce.Do(func() {
		cfg := training.DefaultConfig()
		cfg.Forest.Trees = 3
		cfg.Logistic.MaxIter = 100
		res, err := training.NewPipeline(cfg, nil).Run(context.Background(), nil)
		if err != nil {
			bundleErr = err
			return
		}
		bundle = res.Bundle
	})
	require.NoError(t, bundleErr)
	return bundle
}

func testSet(t *testing.T) *artifact.Set {
	t.Helper()
	set, err := artifact.Pack(testBundle(t))
	require.NoError(t, err)
	return set
}

func TestDirStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := artifact.NewDirStore(filepath.Join(t.TempDir(), "models"))

	ok, err := st.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = st.Load(ctx)
	var inc *artifact.ErrIncomplete
	require.True(t, errors.As(err, &inc))
	assert.Equal(t, artifact.Names(), inc.Missing)

	set := testSet(t)
	require.NoError(t, st.Save(ctx, set))

	ok, err = st.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	b, err := artifact.Unpack(loaded)
	require.NoError(t, err)
	assert.Equal(t, testBundle(t).RunID, b.RunID)
	assert.Equal(t, testBundle(t).Vectorizer.Dim(), b.Vectorizer.Dim())

	entries, err := os.ReadDir(st.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 4, "no temp files left behind")
}

func TestDirStoreMissingMember(t *testing.T) {
	ctx := context.Background()
	st := artifact.NewDirStore(t.TempDir())
	require.NoError(t, st.Save(ctx, testSet(t)))
	require.NoError(t, os.Remove(filepath.Join(st.Dir(), "model_linear.gob")))

	ok, err := st.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = st.Load(ctx)
	var inc *artifact.ErrIncomplete
	require.True(t, errors.As(err, &inc))
	assert.Equal(t, []artifact.Name{artifact.Linear}, inc.Missing)
}

func TestSaveRejectsIncompleteSet(t *testing.T) {
	set := testSet(t)
	delete(set.Envelopes, artifact.TreeEnsemble)

	dir := t.TempDir()
	err := artifact.NewDirStore(dir).Save(context.Background(), set)
	require.Error(t, err)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestUnpackMixedRuns(t *testing.T) {
	set := testSet(t)
	env := set.Envelopes[artifact.Linear]
	env.RunID = "another-run"
	set.Put(env)

	_, err := artifact.Unpack(set)
	var mm *artifact.ErrMismatch
	require.True(t, errors.As(err, &mm), "got %v", err)
	assert.Contains(t, mm.Reason, "different training runs")
}

func TestUnpackIncompatibleFormat(t *testing.T) {
	set := testSet(t)
	env := set.Envelopes[artifact.Vectorizer]
	env.FormatVersion = "v2.0.0"
	set.Put(env)

	_, err := artifact.Unpack(set)
	var mm *artifact.ErrMismatch
	assert.True(t, errors.As(err, &mm))
}

func TestUnpackDimensionMismatch(t *testing.T) {
	set := testSet(t)

	other := textfeat.New(textfeat.DefaultConfig())
	require.NoError(t, other.Fit([]string{"pizza volcano"}))
	payload, err := other.MarshalBinary()
	require.NoError(t, err)

	env := set.Envelopes[artifact.Vectorizer]
	env.Payload = payload
	set.Put(env)

	_, err = artifact.Unpack(set)
	var mm *artifact.ErrMismatch
	require.True(t, errors.As(err, &mm))
	assert.Contains(t, mm.Reason, "features")
}

func TestValidateMissingModel(t *testing.T) {
	b := *testBundle(t)
	b.Models = map[classifier.Kind]classifier.Model{
		classifier.Linear: b.Models[classifier.Linear],
	}
	var mm *artifact.ErrMismatch
	assert.True(t, errors.As(b.Validate(), &mm))
}
