package training

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/emotion"
	"github.com/aminaaguel/Guess-My-Emotion/internal/labels"
	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
)

// Result is the outcome of a successful run.
type Result struct {
	Bundle    *artifact.Bundle
	TrainSize int
	TestSize  int
	Duration  time.Duration
}

// Best returns the model kind with the higher held-out accuracy; ties favour
// the linear model.
func (r *Result) Best() classifier.Kind {
	if r.Bundle.Accuracy[classifier.Linear] >= r.Bundle.Accuracy[classifier.TreeEnsemble] {
		return classifier.Linear
	}
	return classifier.TreeEnsemble
}

// Pipeline trains a matched vectorizer, codec and model pair.
type Pipeline struct {
	cfg    Config
	logger *zap.Logger
	newID  func() string
}

// NewPipeline returns a pipeline for cfg. A nil logger discards output.
func NewPipeline(cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Run trains on corpus plus the synthetic set. Nothing is persisted: the
// caller saves Result.Bundle only when Run succeeds.
func (p *Pipeline) Run(ctx context.Context, corpus []emotion.Example) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("training config: %w", err)
	}
	start := time.Now()
	runID := p.newID()
	log := p.logger.With(zap.String("run_id", runID))

	data := make([]emotion.Example, 0, len(corpus)+75)
	data = append(data, corpus...)
	data = append(data, emotion.SyntheticExamples()...)
	for i, ex := range data {
		if err := ex.Validate(); err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
	}
	log.Info("training data assembled",
		zap.Int("corpus", len(corpus)),
		zap.Int("total", len(data)))

	texts := emotion.Texts(data)
	names := emotion.Labels(data)

	codec, err := labels.Fit(names)
	if err != nil {
		return nil, fmt.Errorf("fit label codec: %w", err)
	}
	y, err := codec.EncodeAll(names)
	if err != nil {
		return nil, fmt.Errorf("encode labels: %w", err)
	}

	split, err := StratifiedSplit(names, p.cfg.TestFraction, p.cfg.Seed)
	if err != nil {
		return nil, err
	}

	trainTexts, trainY := pick(texts, y, split.Train)
	testTexts, testY := pick(texts, y, split.Test)

	vec := textfeat.New(p.cfg.Features)
	if err := vec.Fit(trainTexts); err != nil {
		return nil, err
	}
	trainX, err := vec.Transform(trainTexts)
	if err != nil {
		return nil, err
	}
	testX, err := vec.Transform(testTexts)
	if err != nil {
		return nil, err
	}
	log.Info("features extracted",
		zap.Int("dim", vec.Dim()),
		zap.Int("train", len(trainX)),
		zap.Int("test", len(testX)))

	forestCfg := p.cfg.Forest
	forestCfg.Seed = p.cfg.Seed
	trainers := []classifier.Trainer{
		classifier.NewLogisticTrainer(p.cfg.Logistic),
		classifier.NewForestTrainer(forestCfg),
	}

	bundle := &artifact.Bundle{
		RunID:      runID,
		CreatedAt:  time.Now().UTC(),
		Vectorizer: vec,
		Codec:      codec,
		Models:     make(map[classifier.Kind]classifier.Model),
		Accuracy:   make(map[classifier.Kind]float64),
	}
	for _, tr := range trainers {
		t0 := time.Now()
		m, err := tr.Train(ctx, trainX, trainY, codec.Len())
		if err != nil {
			return nil, err
		}
		acc, err := classifier.Accuracy(m, testX, testY)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", tr.Kind(), err)
		}
		bundle.Models[tr.Kind()] = m
		bundle.Accuracy[tr.Kind()] = acc
		log.Info("model trained",
			zap.String("model", tr.Kind().DisplayName()),
			zap.Float64("accuracy", acc),
			zap.Duration("elapsed", time.Since(t0)))
	}

	res := &Result{
		Bundle:    bundle,
		TrainSize: len(trainX),
		TestSize:  len(testX),
		Duration:  time.Since(start),
	}
	log.Info("training complete",
		zap.String("best", res.Best().DisplayName()),
		zap.Duration("elapsed", res.Duration))
	return res, nil
}

// Train loads the configured corpus, runs the pipeline and packs the
// resulting set.
func (p *Pipeline) Train(ctx context.Context) (*artifact.Set, *Result, error) {
	var corpus []emotion.Example
	if p.cfg.CorpusPath != "" {
		rows, stats, err := LoadCorpusCSV(p.cfg.CorpusPath)
		if err != nil {
			return nil, nil, err
		}
		p.logger.Info("corpus loaded",
			zap.String("path", p.cfg.CorpusPath),
			zap.Int("rows", stats.Rows),
			zap.Int("skipped", stats.Skipped))
		corpus = rows
	}

	res, err := p.Run(ctx, corpus)
	if err != nil {
		return nil, nil, err
	}
	set, err := artifact.Pack(res.Bundle)
	if err != nil {
		return nil, nil, err
	}
	return set, res, nil
}

func pick(texts []string, y []int, idx []int) ([]string, []int) {
	outT := make([]string, len(idx))
	outY := make([]int, len(idx))
	for k, i := range idx {
		outT[k] = texts[i]
		outY[k] = y[i]
	}
	return outT, outY
}
