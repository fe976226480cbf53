package artifact

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatVersion is stamped on every envelope. Sets are readable when the
// major version matches.
const FormatVersion = "v1.0.0"

// Name identifies one artifact in a set.
type Name string

const (
	Vectorizer   Name = "vectorizer"
	LabelCodec   Name = "label_codec"
	Linear       Name = "model_linear"
	TreeEnsemble Name = "model_tree_ensemble"
)

// Names returns the four members of a complete set.
func Names() []Name {
	return []Name{Vectorizer, LabelCodec, Linear, TreeEnsemble}
}

// Envelope wraps one serialized artifact with the identity of the training
// run that produced it.
type Envelope struct {
	Name          Name
	RunID         string
	FormatVersion string
	CreatedAt     time.Time

	// Accuracy is the held-out accuracy for model artifacts, zero otherwise.
	Accuracy float64

	Payload []byte
}

// Marshal encodes the envelope with gob.
func (e Envelope) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", e.Name, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalEnvelope decodes bytes written by Envelope.Marshal.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}

// Set is the unit of persistence: the four envelopes of one training run.
type Set struct {
	Envelopes map[Name]Envelope
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{Envelopes: make(map[Name]Envelope)}
}

// Put adds or replaces an envelope.
func (s *Set) Put(e Envelope) {
	s.Envelopes[e.Name] = e
}

// Missing lists the members absent from the set, in canonical order.
func (s *Set) Missing() []Name {
	var out []Name
	for _, n := range Names() {
		if _, ok := s.Envelopes[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// RunID returns the run ID shared by every envelope, or an error when the
// set is incomplete or mixes runs.
func (s *Set) RunID() (string, error) {
	if missing := s.Missing(); len(missing) > 0 {
		return "", &ErrIncomplete{Missing: missing}
	}
	ids := make(map[string][]string)
	for _, n := range Names() {
		e := s.Envelopes[n]
		ids[e.RunID] = append(ids[e.RunID], string(n))
	}
	if len(ids) != 1 {
		var parts []string
		for id, names := range ids {
			parts = append(parts, fmt.Sprintf("%s=%q", strings.Join(names, ","), id))
		}
		sort.Strings(parts)
		return "", &ErrMismatch{Reason: "artifacts come from different training runs: " + strings.Join(parts, " ")}
	}
	for id := range ids {
		return id, nil
	}
	return "", nil
}

// Store persists complete sets. Save replaces any previously stored set.
type Store interface {
	Save(ctx context.Context, s *Set) error

	// Load returns *ErrIncomplete when any member is absent.
	Load(ctx context.Context) (*Set, error)

	// Exists reports whether all four members are present.
	Exists(ctx context.Context) (bool, error)
}
