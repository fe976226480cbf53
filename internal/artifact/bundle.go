package artifact

import (
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/labels"
	"github.com/aminaaguel/Guess-My-Emotion/internal/textfeat"
)

// modelNames maps each classifier kind to its artifact name.
var modelNames = map[classifier.Kind]Name{
	classifier.Linear:       Linear,
	classifier.TreeEnsemble: TreeEnsemble,
}

// Bundle is the decoded, in-memory form of a set.
type Bundle struct {
	RunID      string
	CreatedAt  time.Time
	Vectorizer *textfeat.Vectorizer
	Codec      *labels.Codec
	Models     map[classifier.Kind]classifier.Model

	// Accuracy holds held-out accuracy per model kind.
	Accuracy map[classifier.Kind]float64
}

// Validate checks that the components were fitted together: the vectorizer
// dimension matches every model input dimension and the codec size matches
// every model's class count.
func (b *Bundle) Validate() error {
	if b.Vectorizer == nil || !b.Vectorizer.Fitted() {
		return &ErrMismatch{Reason: "vectorizer missing or unfitted"}
	}
	if b.Codec == nil || b.Codec.Len() == 0 {
		return &ErrMismatch{Reason: "label codec missing or empty"}
	}
	dim := b.Vectorizer.Dim()
	for _, kind := range classifier.Kinds() {
		m, ok := b.Models[kind]
		if !ok || m == nil {
			return &ErrMismatch{Reason: fmt.Sprintf("%s model missing", kind)}
		}
		if m.InputDim() != dim {
			return &ErrMismatch{Reason: fmt.Sprintf("%s model expects %d features, vectorizer produces %d", kind, m.InputDim(), dim)}
		}
		if m.NumClasses() != b.Codec.Len() {
			return &ErrMismatch{Reason: fmt.Sprintf("%s model has %d classes, label codec has %d", kind, m.NumClasses(), b.Codec.Len())}
		}
	}
	return nil
}

// Pack serializes a validated bundle into a set.
func Pack(b *Bundle) (*Set, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.RunID == "" {
		return nil, fmt.Errorf("pack artifacts: empty run ID")
	}
	created := b.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	set := NewSet()
	put := func(name Name, payload []byte, acc float64) {
		set.Put(Envelope{
			Name:          name,
			RunID:         b.RunID,
			FormatVersion: FormatVersion,
			CreatedAt:     created,
			Accuracy:      acc,
			Payload:       payload,
		})
	}

	vec, err := b.Vectorizer.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("pack artifacts: %w", err)
	}
	put(Vectorizer, vec, 0)

	codec, err := b.Codec.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("pack artifacts: %w", err)
	}
	put(LabelCodec, codec, 0)

	for kind, name := range modelNames {
		data, err := b.Models[kind].MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("pack artifacts: %w", err)
		}
		put(name, data, b.Accuracy[kind])
	}
	return set, nil
}

// Unpack decodes a set and verifies that its members belong together.
// Incomplete sets yield *ErrIncomplete; every other consistency failure
// yields *ErrMismatch.
func Unpack(s *Set) (*Bundle, error) {
	runID, err := s.RunID()
	if err != nil {
		return nil, err
	}
	for _, n := range Names() {
		if err := checkVersion(s.Envelopes[n]); err != nil {
			return nil, err
		}
	}

	b := &Bundle{
		RunID:     runID,
		CreatedAt: s.Envelopes[Vectorizer].CreatedAt,
		Models:    make(map[classifier.Kind]classifier.Model),
		Accuracy:  make(map[classifier.Kind]float64),
	}

	b.Vectorizer = &textfeat.Vectorizer{}
	if err := b.Vectorizer.UnmarshalBinary(s.Envelopes[Vectorizer].Payload); err != nil {
		return nil, &ErrMismatch{Reason: "unreadable vectorizer", Err: err}
	}
	b.Codec = &labels.Codec{}
	if err := b.Codec.UnmarshalBinary(s.Envelopes[LabelCodec].Payload); err != nil {
		return nil, &ErrMismatch{Reason: "unreadable label codec", Err: err}
	}
	for kind, name := range modelNames {
		env := s.Envelopes[name]
		m, err := classifier.Decode(kind, env.Payload)
		if err != nil {
			return nil, &ErrMismatch{Reason: fmt.Sprintf("unreadable %s model", kind), Err: err}
		}
		b.Models[kind] = m
		b.Accuracy[kind] = env.Accuracy
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func checkVersion(e Envelope) error {
	if !semver.IsValid(e.FormatVersion) {
		return &ErrMismatch{Reason: fmt.Sprintf("%s has invalid format version %q", e.Name, e.FormatVersion)}
	}
	if semver.Major(e.FormatVersion) != semver.Major(FormatVersion) {
		return &ErrMismatch{Reason: fmt.Sprintf("%s format %s is incompatible with %s", e.Name, e.FormatVersion, FormatVersion)}
	}
	return nil
}
