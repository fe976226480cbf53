package predictor

import (
	"context"
	"errors"
	"fmt"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
)

// ErrModelsNotLoaded is returned when prediction is attempted without a
// complete, consistent artifact set.
type ErrModelsNotLoaded struct {
	Err error
}

func (e *ErrModelsNotLoaded) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("models not loaded: %v", e.Err)
	}
	return "models not loaded"
}

func (e *ErrModelsNotLoaded) Unwrap() error { return e.Err }

// PredictionResult is the outcome of classifying one text.
type PredictionResult struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	ModelUsed  string  `json:"model_used"`

	// Probabilities has one entry per known emotion and sums to 1.
	Probabilities map[string]float64 `json:"probabilities"`
}

// Predictor classifies text with a loaded bundle. It never changes after
// construction and is safe for concurrent use. A nil *Predictor is valid
// and reports not ready.
type Predictor struct {
	bundle *artifact.Bundle
}

// New wraps a validated bundle.
func New(b *artifact.Bundle) (*Predictor, error) {
	if b == nil {
		return nil, &ErrModelsNotLoaded{}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Predictor{bundle: b}, nil
}

// FromSet decodes and validates a set.
func FromSet(s *artifact.Set) (*Predictor, error) {
	b, err := artifact.Unpack(s)
	if err != nil {
		return nil, err
	}
	return &Predictor{bundle: b}, nil
}

// Load reads the set from st. A missing or partial set is reported as
// *ErrModelsNotLoaded; a present but inconsistent set as *artifact.ErrMismatch.
func Load(ctx context.Context, st artifact.Store) (*Predictor, error) {
	set, err := st.Load(ctx)
	if err != nil {
		var inc *artifact.ErrIncomplete
		if errors.As(err, &inc) {
			return nil, &ErrModelsNotLoaded{Err: err}
		}
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	return FromSet(set)
}

// Ready reports whether the predictor holds models.
func (p *Predictor) Ready() bool {
	return p != nil && p.bundle != nil
}

// RunID identifies the training run of the loaded artifacts.
func (p *Predictor) RunID() string {
	if !p.Ready() {
		return ""
	}
	return p.bundle.RunID
}

// Classes returns the known emotions in class-index order.
func (p *Predictor) Classes() []string {
	if !p.Ready() {
		return nil
	}
	return p.bundle.Codec.Classes()
}

// Accuracy returns the held-out accuracy recorded for kind at training time.
func (p *Predictor) Accuracy(kind classifier.Kind) float64 {
	if !p.Ready() {
		return 0
	}
	return p.bundle.Accuracy[kind]
}

// Predict classifies text with the chosen model. The reported emotion is
// the highest-probability class, ties going to the lowest class index, and
// Confidence equals its probability.
func (p *Predictor) Predict(text string, kind classifier.Kind) (*PredictionResult, error) {
	if !p.Ready() {
		return nil, &ErrModelsNotLoaded{}
	}
	m, ok := p.bundle.Models[kind]
	if !ok {
		return nil, fmt.Errorf("unknown model kind %q", kind)
	}

	x, err := p.bundle.Vectorizer.TransformOne(text)
	if err != nil {
		return nil, err
	}
	idx, proba, err := classifier.Predict(m, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind.DisplayName(), err)
	}
	label, err := p.bundle.Codec.Decode(idx)
	if err != nil {
		return nil, err
	}

	probs := make(map[string]float64, len(proba))
	for i, v := range proba {
		name, err := p.bundle.Codec.Decode(i)
		if err != nil {
			return nil, err
		}
		probs[name] = v
	}

	return &PredictionResult{
		Emotion:       label,
		Confidence:    proba[idx],
		ModelUsed:     kind.DisplayName(),
		Probabilities: probs,
	}, nil
}
