package training

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
)

// Config holds all training settings.
type Config struct {
	// CorpusPath is an optional CSV corpus with text and emotion columns.
	// Empty trains on the synthetic set alone.
	CorpusPath string

	// Seed drives the stratified split and the forest.
	Seed uint64

	// TestFraction is the held-out share of each class. Default: 0.2.
	TestFraction float64

	Features textfeat.Config
	Logistic classifier.LogisticConfig
	Forest   classifier.ForestConfig
}

// DefaultConfig returns a Config with the standard settings.
func DefaultConfig() Config {
	return Config{
		Seed:         42,
		TestFraction: 0.2,
		Features:     textfeat.DefaultConfig(),
		Logistic:     classifier.DefaultLogisticConfig(),
		Forest:       classifier.DefaultForestConfig(),
	}
}

// ConfigFromEnv builds a Config from GME_* environment variables, falling
// back to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if p := os.Getenv("GME_CORPUS"); p != "" {
		cfg.CorpusPath = p
	}
	if s := os.Getenv("GME_SEED"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("GME_SEED: %w", err)
		}
		cfg.Seed = v
	}
	if s := os.Getenv("GME_TEST_FRACTION"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return cfg, fmt.Errorf("GME_TEST_FRACTION: %w", err)
		}
		cfg.TestFraction = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"GME_MAX_FEATURES", &cfg.Features.MaxFeatures},
		{"GME_TREES", &cfg.Forest.Trees},
		{"GME_MAX_DEPTH", &cfg.Forest.MaxDepth},
		{"GME_LR_MAX_ITER", &cfg.Logistic.MaxIter},
	}
	for _, e := range ints {
		s := os.Getenv(e.env)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", e.env, err)
		}
		*e.dst = v
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test fraction must be in (0,1), got %g", c.TestFraction)
	}
	if c.Features.MaxFeatures < 0 {
		return fmt.Errorf("max features must not be negative, got %d", c.Features.MaxFeatures)
	}
	if c.Features.NGramMax < 1 {
		return fmt.Errorf("n-gram order must be at least 1, got %d", c.Features.NGramMax)
	}
	if c.Forest.Trees < 1 {
		return fmt.Errorf("forest needs at least one tree, got %d", c.Forest.Trees)
	}
	if c.Forest.MaxDepth < 1 {
		return fmt.Errorf("forest max depth must be positive, got %d", c.Forest.MaxDepth)
	}
	if c.Logistic.C <= 0 {
		return fmt.Errorf("logistic C must be positive, got %g", c.Logistic.C)
	}
	return nil
}
