package classifier

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
)

// LogisticConfig holds the regularisation and solver settings.
type LogisticConfig struct {
	// C is the inverse L2 regularisation strength.
	C float64

	// MaxIter bounds the L-BFGS major iterations.
	MaxIter int

	// GradTol stops the solver once the gradient infinity norm falls below it.
	GradTol float64
}

// DefaultLogisticConfig returns C=1, 1000 iterations.
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{
		C:       1.0,
		MaxIter: 1000,
		GradTol: 1e-5,
	}
}

// LogisticTrainer fits a multinomial (softmax) logistic regression.
type LogisticTrainer struct {
	cfg LogisticConfig
}

// NewLogisticTrainer returns a trainer for cfg.
func NewLogisticTrainer(cfg LogisticConfig) *LogisticTrainer {
	return &LogisticTrainer{cfg: cfg}
}

func (t *LogisticTrainer) Kind() Kind { return Linear }

// Train minimises the mean cross-entropy plus ||W||²/(2·C·n), which has the
// same minimiser as C·Σloss + ||W||²/2. The bias is not penalised.
func (t *LogisticTrainer) Train(ctx context.Context, X []textfeat.Vector, y []int, numClasses int) (Model, error) {
	dim, err := checkTrainingSet(X, y, numClasses)
	if err != nil {
		return nil, fmt.Errorf("train logistic regression: %w", err)
	}
	if t.cfg.C <= 0 {
		return nil, fmt.Errorf("train logistic regression: C must be positive, got %g", t.cfg.C)
	}

	k := numClasses
	n := float64(len(X))
	nw := k * dim
	reg := 1 / (t.cfg.C * n)
	scores := make([]float64, k)

	loss := func(theta []float64) float64 {
		w := theta[:nw]
		b := theta[nw:]
		var total float64
		for i, x := range X {
			linearScores(scores, w, b, dim, x)
			total += floats.LogSumExp(scores) - scores[y[i]]
		}
		return total/n + 0.5*reg*floats.Dot(w, w)
	}

	grad := func(g, theta []float64) {
		w := theta[:nw]
		b := theta[nw:]
		for j := range g {
			g[j] = 0
		}
		gw := g[:nw]
		gb := g[nw:]
		for i, x := range X {
			linearScores(scores, w, b, dim, x)
			lse := floats.LogSumExp(scores)
			for c := 0; c < k; c++ {
				d := math.Exp(scores[c] - lse)
				if c == y[i] {
					d--
				}
				gb[c] += d
				row := gw[c*dim : (c+1)*dim]
				for kk, j := range x.Indices {
					row[j] += d * x.Values[kk]
				}
			}
		}
		floats.Scale(1/n, g)
		floats.AddScaled(gw, reg, w)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	problem := optimize.Problem{Func: loss, Grad: grad}
	settings := &optimize.Settings{
		MajorIterations:   t.cfg.MaxIter,
		GradientThreshold: t.cfg.GradTol,
	}
	x0 := make([]float64, nw+k)
	result, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if result == nil || result.X == nil {
		if err == nil {
			err = fmt.Errorf("solver returned no solution")
		}
		return nil, fmt.Errorf("train logistic regression: %w", err)
	}
	// A solver error with a non-nil X (line-search stall near the optimum)
	// keeps the best point found.

	theta := result.X
	weights := mat.NewDense(k, dim, append([]float64(nil), theta[:nw]...))
	bias := append([]float64(nil), theta[nw:]...)
	return &Logistic{weights: weights, bias: bias}, nil
}

// linearScores writes W·x + b into out.
func linearScores(out, w, b []float64, dim int, x textfeat.Vector) {
	for c := range out {
		row := w[c*dim : (c+1)*dim]
		s := b[c]
		for kk, j := range x.Indices {
			s += row[j] * x.Values[kk]
		}
		out[c] = s
	}
}

// Logistic is a fitted softmax regression.
type Logistic struct {
	weights *mat.Dense // classes × features
	bias    []float64
}

func (m *Logistic) Kind() Kind { return Linear }

func (m *Logistic) InputDim() int {
	_, c := m.weights.Dims()
	return c
}

func (m *Logistic) NumClasses() int {
	return len(m.bias)
}

func (m *Logistic) PredictProba(x textfeat.Vector) ([]float64, error) {
	k, dim := m.weights.Dims()
	if x.Dim != dim {
		return nil, &ErrDimension{Want: dim, Got: x.Dim}
	}
	scores := make([]float64, k)
	for c := 0; c < k; c++ {
		row := m.weights.RawRowView(c)
		s := m.bias[c]
		for kk, j := range x.Indices {
			s += row[j] * x.Values[kk]
		}
		scores[c] = s
	}
	lse := floats.LogSumExp(scores)
	for c := range scores {
		scores[c] = math.Exp(scores[c] - lse)
	}
	return scores, nil
}

type logisticState struct {
	Weights []byte
	Bias    []float64
}

func (m *Logistic) MarshalBinary() ([]byte, error) {
	w, err := m.weights.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode logistic weights: %w", err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(logisticState{Weights: w, Bias: m.bias}); err != nil {
		return nil, fmt.Errorf("encode logistic regression: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeLogistic(data []byte) (Model, error) {
	var st logisticState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return nil, fmt.Errorf("decode logistic regression: %w", err)
	}
	var w mat.Dense
	if err := w.UnmarshalBinary(st.Weights); err != nil {
		return nil, fmt.Errorf("decode logistic weights: %w", err)
	}
	if r, _ := w.Dims(); r != len(st.Bias) {
		return nil, fmt.Errorf("decode logistic regression: %d weight rows but %d biases", r, len(st.Bias))
	}
	return &Logistic{weights: &w, bias: st.Bias}, nil
}
