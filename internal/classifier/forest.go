package classifier

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
)

// ForestConfig controls random forest growth.
type ForestConfig struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int

	// MaxFeatures is the number of candidate features per split; zero
	// selects √(feature dimension).
	MaxFeatures int

	// Bootstrap resamples the training rows with replacement per tree.
	Bootstrap bool

	Seed uint64

	// Workers bounds concurrent tree growth; zero uses GOMAXPROCS.
	Workers int
}

// DefaultForestConfig returns 100 trees, depth 10, min split 5, seed 42.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:           100,
		MaxDepth:        10,
		MinSamplesSplit: 5,
		Bootstrap:       true,
		Seed:            42,
	}
}

// ForestTrainer fits a random forest of gini classification trees.
type ForestTrainer struct {
	cfg ForestConfig
}

// NewForestTrainer returns a trainer for cfg.
func NewForestTrainer(cfg ForestConfig) *ForestTrainer {
	return &ForestTrainer{cfg: cfg}
}

func (t *ForestTrainer) Kind() Kind { return TreeEnsemble }

// Train grows every tree from its own seeded generator, so the result does
// not depend on worker scheduling.
func (t *ForestTrainer) Train(ctx context.Context, X []textfeat.Vector, y []int, numClasses int) (Model, error) {
	dim, err := checkTrainingSet(X, y, numClasses)
	if err != nil {
		return nil, fmt.Errorf("train random forest: %w", err)
	}
	if t.cfg.Trees < 1 {
		return nil, fmt.Errorf("train random forest: need at least one tree, got %d", t.cfg.Trees)
	}
	if t.cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("train random forest: max depth must be positive, got %d", t.cfg.MaxDepth)
	}

	params := treeParams{
		maxDepth:        t.cfg.MaxDepth,
		minSamplesSplit: t.cfg.MinSamplesSplit,
		maxFeatures:     t.cfg.MaxFeatures,
		numClasses:      numClasses,
	}
	if params.maxFeatures <= 0 {
		params.maxFeatures = int(math.Sqrt(float64(dim)))
		if params.maxFeatures < 1 {
			params.maxFeatures = 1
		}
	}

	workers := t.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trees := make([]Tree, t.cfg.Trees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(t.cfg.Seed, uint64(i)))
			rows := make([]int, len(X))
			for r := range rows {
				if t.cfg.Bootstrap {
					rows[r] = rng.IntN(len(X))
				} else {
					rows[r] = r
				}
			}
			trees[i] = *growTree(X, y, rows, params, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("train random forest: %w", err)
	}

	return &Forest{trees: trees, numClasses: numClasses, dim: dim}, nil
}

// Forest averages the leaf distributions of its trees.
type Forest struct {
	trees      []Tree
	numClasses int
	dim        int
}

func (f *Forest) Kind() Kind      { return TreeEnsemble }
func (f *Forest) InputDim() int   { return f.dim }
func (f *Forest) NumClasses() int { return f.numClasses }

// Size returns the number of trees.
func (f *Forest) Size() int { return len(f.trees) }

func (f *Forest) PredictProba(x textfeat.Vector) ([]float64, error) {
	if x.Dim != f.dim {
		return nil, &ErrDimension{Want: f.dim, Got: x.Dim}
	}
	out := make([]float64, f.numClasses)
	for i := range f.trees {
		dist, err := f.trees[i].Distribution(x)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		for c, p := range dist {
			out[c] += p
		}
	}
	scale := 1 / float64(len(f.trees))
	for c := range out {
		out[c] *= scale
	}
	return out, nil
}

type forestState struct {
	Trees      []Tree
	NumClasses int
	Dim        int
}

func (f *Forest) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(forestState{Trees: f.trees, NumClasses: f.numClasses, Dim: f.dim})
	if err != nil {
		return nil, fmt.Errorf("encode random forest: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeForest(data []byte) (Model, error) {
	var st forestState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return nil, fmt.Errorf("decode random forest: %w", err)
	}
	if len(st.Trees) == 0 {
		return nil, fmt.Errorf("decode random forest: no trees")
	}
	for i, t := range st.Trees {
		if t.FeatureSize != st.Dim {
			return nil, fmt.Errorf("decode random forest: tree %d feature size %d, forest %d", i, t.FeatureSize, st.Dim)
		}
		for _, leaf := range t.Leaves {
			if len(leaf) != st.NumClasses {
				return nil, fmt.Errorf("decode random forest: tree %d leaf has %d classes, want %d", i, len(leaf), st.NumClasses)
			}
		}
	}
	return &Forest{trees: st.Trees, numClasses: st.NumClasses, dim: st.Dim}, nil
}
