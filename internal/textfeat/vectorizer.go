package textfeat

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyVocabulary is returned when fitting leaves no terms, e.g. a corpus
// made only of stop words.
var ErrEmptyVocabulary = errors.New("empty vocabulary: corpus contains only stop words or no tokens")

// ErrNotFitted is returned by Transform on a vectorizer that was never fitted.
type ErrNotFitted struct {
	Op string
}

func (e *ErrNotFitted) Error() string {
	return fmt.Sprintf("vectorizer not fitted: %s", e.Op)
}

// Config controls vocabulary construction.
type Config struct {
	// MaxFeatures caps the vocabulary size; terms are ranked by total
	// corpus frequency. Zero means unlimited.
	MaxFeatures int

	// NGramMax is the longest n-gram emitted by the analyzer.
	NGramMax int
}

// DefaultConfig returns the standard settings: 5000 features, unigrams and
// bigrams.
func DefaultConfig() Config {
	return Config{
		MaxFeatures: 5000,
		NGramMax:    2,
	}
}

// Vectorizer maps text to TF-IDF weighted, L2-normalised sparse vectors over
// a vocabulary learned once by Fit. A fitted vectorizer is read-only and
// safe for concurrent Transform calls.
type Vectorizer struct {
	cfg      Config
	analyzer *Analyzer
	vocab    map[string]int
	terms    []string
	idf      []float64
}

// New returns an unfitted vectorizer.
func New(cfg Config) *Vectorizer {
	return &Vectorizer{
		cfg:      cfg,
		analyzer: NewAnalyzer(cfg.NGramMax, Lower, RemoveStopWords),
	}
}

// Fit learns the vocabulary and inverse document frequencies from corpus.
// Only the texts passed here influence the vocabulary; refitting replaces
// all learned state.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("fit vectorizer: %w", ErrEmptyVocabulary)
	}

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range v.analyzer.Analyze(doc) {
			termFreq[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}
	if len(termFreq) == 0 {
		return fmt.Errorf("fit vectorizer: %w", ErrEmptyVocabulary)
	}

	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	if v.cfg.MaxFeatures > 0 && len(terms) > v.cfg.MaxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return termFreq[terms[i]] > termFreq[terms[j]]
		})
		terms = terms[:v.cfg.MaxFeatures]
		sort.Strings(terms)
	}

	n := float64(len(corpus))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	v.vocab = vocab
	v.terms = terms
	v.idf = idf
	return nil
}

// Fitted reports whether Fit has completed.
func (v *Vectorizer) Fitted() bool {
	return v != nil && v.vocab != nil
}

// Dim returns the feature dimension, zero before fitting.
func (v *Vectorizer) Dim() int {
	if !v.Fitted() {
		return 0
	}
	return len(v.terms)
}

// Vocabulary returns the learned terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Transform maps each text to its feature vector.
func (v *Vectorizer) Transform(texts []string) ([]Vector, error) {
	if !v.Fitted() {
		return nil, &ErrNotFitted{Op: "transform"}
	}
	out := make([]Vector, len(texts))
	for i, t := range texts {
		out[i] = v.transform(t)
	}
	return out, nil
}

// TransformOne maps a single text to its feature vector. Text with no known
// terms maps to the zero vector.
func (v *Vectorizer) TransformOne(text string) (Vector, error) {
	if !v.Fitted() {
		return Vector{}, &ErrNotFitted{Op: "transform"}
	}
	return v.transform(text), nil
}

func (v *Vectorizer) transform(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range v.analyzer.Analyze(text) {
		if col, ok := v.vocab[term]; ok {
			counts[col]++
		}
	}

	vec := Vector{Dim: len(v.terms)}
	if len(counts) == 0 {
		return vec
	}

	vec.Indices = make([]int, 0, len(counts))
	for col := range counts {
		vec.Indices = append(vec.Indices, col)
	}
	sort.Ints(vec.Indices)

	vec.Values = make([]float64, len(vec.Indices))
	for k, col := range vec.Indices {
		vec.Values[k] = counts[col] * v.idf[col]
	}
	if norm := floats.Norm(vec.Values, 2); norm > 0 {
		floats.Scale(1/norm, vec.Values)
	}
	return vec
}

// vectorizerState is the gob wire form.
type vectorizerState struct {
	MaxFeatures int
	NGramMax    int
	Terms       []string
	IDF         []float64
}

// MarshalBinary encodes the fitted state.
func (v *Vectorizer) MarshalBinary() ([]byte, error) {
	if !v.Fitted() {
		return nil, &ErrNotFitted{Op: "marshal"}
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(vectorizerState{
		MaxFeatures: v.cfg.MaxFeatures,
		NGramMax:    v.cfg.NGramMax,
		Terms:       v.terms,
		IDF:         v.idf,
	})
	if err != nil {
		return nil, fmt.Errorf("encode vectorizer: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a vectorizer encoded by MarshalBinary.
func (v *Vectorizer) UnmarshalBinary(data []byte) error {
	var st vectorizerState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return fmt.Errorf("decode vectorizer: %w", err)
	}
	if len(st.Terms) == 0 || len(st.Terms) != len(st.IDF) {
		return fmt.Errorf("decode vectorizer: %d terms with %d idf weights", len(st.Terms), len(st.IDF))
	}

	cfg := Config{MaxFeatures: st.MaxFeatures, NGramMax: st.NGramMax}
	*v = *New(cfg)
	v.terms = st.Terms
	v.idf = st.IDF
	v.vocab = make(map[string]int, len(st.Terms))
	for i, t := range st.Terms {
		v.vocab[t] = i
	}
	return nil
}
