package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
	"github.com/aminaaguel/Guess-My-Emotion/internal/logging"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
	"github.com/aminaaguel/Guess-My-Emotion/internal/store"
	"github.com/aminaaguel/Guess-My-Emotion/internal/training"
)

// Artifact backends.
const (
	backendDir    = "dir"
	backendSQLite = "sqlite"
)

// resolveDBPath returns the database path using --db flag (highest priority),
// then GME_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveModelsDir returns the artifact directory using --models, then
// GME_MODELS, then <data dir>/models.
func resolveModelsDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("models"); p != "" {
		return p, nil
	}
	if p := os.Getenv("GME_MODELS"); p != "" {
		return p, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "models"), nil
}

func resolveBackend(cmd *cobra.Command) (string, error) {
	b, _ := cmd.Flags().GetString("artifact-backend")
	if b == "" {
		b = os.Getenv("GME_ARTIFACT_BACKEND")
	}
	switch b {
	case "", backendDir:
		return backendDir, nil
	case backendSQLite:
		return backendSQLite, nil
	default:
		return "", fmt.Errorf("unknown artifact backend %q (want dir or sqlite)", b)
	}
}

// newLogger builds the command logger. Flags override the environment;
// defaultFormat applies when neither sets a format.
func newLogger(cmd *cobra.Command, defaultFormat string) (*zap.Logger, error) {
	cfg := logging.ConfigFromEnv()
	if os.Getenv("GME_LOG_FORMAT") == "" {
		cfg.Format = defaultFormat
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Format = v
	}
	return logging.New(cfg)
}

// openStore opens the history database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// artifactStore picks the configured backend. The sqlite backend shares the
// history database, so db must be open when it is selected.
func artifactStore(cmd *cobra.Command, db *store.Store) (artifact.Store, error) {
	backend, err := resolveBackend(cmd)
	if err != nil {
		return nil, err
	}
	if backend == backendSQLite {
		if db == nil {
			return nil, fmt.Errorf("sqlite artifact backend needs a database")
		}
		return db.ArtifactRepo(), nil
	}
	dir, err := resolveModelsDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve models dir: %w", err)
	}
	return artifact.NewDirStore(dir), nil
}

// trainFunc trains with the environment's training config.
func trainFunc(logger *zap.Logger) predictor.TrainFunc {
	return func(ctx context.Context) (*artifact.Set, error) {
		cfg, err := training.ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		set, _, err := training.NewPipeline(cfg, logger).Train(ctx)
		return set, err
	}
}
