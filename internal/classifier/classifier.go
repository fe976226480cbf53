package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
)

// Kind names a classifier family.
type Kind string

const (
	Linear       Kind = "linear"
	TreeEnsemble Kind = "tree_ensemble"
)

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{Linear, TreeEnsemble}
}

// DisplayName is the human label reported with each prediction.
func (k Kind) DisplayName() string {
	switch k {
	case Linear:
		return "Logistic Regression"
	case TreeEnsemble:
		return "Random Forest"
	default:
		return string(k)
	}
}

// ParseKind accepts the canonical names plus the common short aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lr", "logistic", "logistic_regression":
		return Linear, nil
	case "tree_ensemble", "rf", "forest", "random_forest":
		return TreeEnsemble, nil
	default:
		return "", fmt.Errorf("unknown model kind %q (want linear or tree_ensemble)", s)
	}
}

// Model is a trained, immutable classifier. Implementations are safe for
// concurrent use.
type Model interface {
	Kind() Kind

	// InputDim is the feature dimension the model was trained on.
	InputDim() int

	// NumClasses is the number of output classes.
	NumClasses() int

	// PredictProba returns one probability per class, summing to 1.
	PredictProba(x textfeat.Vector) ([]float64, error)

	MarshalBinary() ([]byte, error)
}

// Trainer fits a new model from labelled vectors.
type Trainer interface {
	Kind() Kind
	Train(ctx context.Context, X []textfeat.Vector, y []int, numClasses int) (Model, error)
}

var decoders = map[Kind]func([]byte) (Model, error){
	Linear:       decodeLogistic,
	TreeEnsemble: decodeForest,
}

// Decode restores a model of the given kind from MarshalBinary output.
func Decode(kind Kind, data []byte) (Model, error) {
	dec, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("no decoder for model kind %q", kind)
	}
	return dec(data)
}

// ErrDimension is returned when a vector's dimension differs from the
// model's input dimension.
type ErrDimension struct {
	Want, Got int
}

func (e *ErrDimension) Error() string {
	return fmt.Sprintf("feature dimension %d does not match model input dimension %d", e.Got, e.Want)
}

// Argmax returns the index of the largest value; ties resolve to the lowest
// index. Returns -1 for an empty slice.
func Argmax(p []float64) int {
	best := -1
	for i, v := range p {
		if best < 0 || v > p[best] {
			best = i
		}
	}
	return best
}

// Predict returns the argmax class and the full distribution.
func Predict(m Model, x textfeat.Vector) (int, []float64, error) {
	p, err := m.PredictProba(x)
	if err != nil {
		return 0, nil, err
	}
	return Argmax(p), p, nil
}

// Accuracy returns the fraction of X whose predicted class equals y.
func Accuracy(m Model, X []textfeat.Vector, y []int) (float64, error) {
	if len(X) != len(y) {
		return 0, fmt.Errorf("accuracy: %d vectors but %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return 0, fmt.Errorf("accuracy: empty evaluation set")
	}
	correct := 0
	for i, x := range X {
		c, _, err := Predict(m, x)
		if err != nil {
			return 0, fmt.Errorf("accuracy: sample %d: %w", i, err)
		}
		if c == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X)), nil
}

// checkTrainingSet validates shapes shared by every trainer and returns the
// common feature dimension.
func checkTrainingSet(X []textfeat.Vector, y []int, numClasses int) (int, error) {
	if len(X) == 0 {
		return 0, fmt.Errorf("empty training set")
	}
	if len(X) != len(y) {
		return 0, fmt.Errorf("%d vectors but %d labels", len(X), len(y))
	}
	if numClasses < 1 {
		return 0, fmt.Errorf("need at least one class, got %d", numClasses)
	}
	dim := X[0].Dim
	if dim < 1 {
		return 0, fmt.Errorf("feature dimension must be positive")
	}
	for i, x := range X {
		if x.Dim != dim {
			return 0, fmt.Errorf("sample %d: %w", i, &ErrDimension{Want: dim, Got: x.Dim})
		}
		if y[i] < 0 || y[i] >= numClasses {
			return 0, fmt.Errorf("sample %d: label %d out of range [0,%d)", i, y[i], numClasses)
		}
	}
	return dim, nil
}
