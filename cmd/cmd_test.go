package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "guess-my-emotion")
	assert.Contains(t, out, "artifact format v1.0.0")
}

func TestResolveBackend(t *testing.T) {
	t.Setenv("GME_ARTIFACT_BACKEND", "sqlite")
	b, err := resolveBackend(statsCmd)
	require.NoError(t, err)
	assert.Equal(t, backendSQLite, b)

	t.Setenv("GME_ARTIFACT_BACKEND", "")
	b, err = resolveBackend(statsCmd)
	require.NoError(t, err)
	assert.Equal(t, backendDir, b)

	t.Setenv("GME_ARTIFACT_BACKEND", "s3")
	_, err = resolveBackend(statsCmd)
	assert.Error(t, err)
}

func TestModelFlag(t *testing.T) {
	kind, err := modelFlag(predictCmd)
	require.NoError(t, err)
	assert.Equal(t, classifier.TreeEnsemble, kind)

	require.NoError(t, predictCmd.Flags().Set("model", "linear"))
	t.Cleanup(func() { predictCmd.Flags().Set("model", "") })
	kind, err = modelFlag(predictCmd)
	require.NoError(t, err)
	assert.Equal(t, classifier.Linear, kind)
}

func TestStatsAndReset(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	out, err := execute(t, "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No rounds played yet.")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	repo := st.RoundRepo()
	ctx := context.Background()
	for _, correct := range []bool{true, false, true} {
		require.NoError(t, repo.AppendRound(ctx, store.RoundEventData{
			SessionID:        "s1",
			Text:             "I'm feeling great!",
			UserEmotion:      "happy",
			PredictedEmotion: "happy",
			ModelUsed:        classifier.TreeEnsemble.DisplayName(),
			Confidence:       0.8,
			AICorrect:        correct,
		}))
	}
	require.NoError(t, st.Close())

	out, err = execute(t, "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Rounds:   3 over 1 sessions")
	assert.Contains(t, out, "You won:  1")

	_, err = execute(t, "reset", "--db", dbPath)
	assert.Error(t, err)

	out, err = execute(t, "reset", "--db", dbPath, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 3 rounds.")
}
