package labels

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"sort"
)

// ErrNoLabels is returned when fitting an empty label list.
var ErrNoLabels = errors.New("no labels to fit")

// ErrNotFitted is returned when encoding or decoding before Fit.
type ErrNotFitted struct {
	Op string
}

func (e *ErrNotFitted) Error() string {
	return fmt.Sprintf("label codec not fitted: %s", e.Op)
}

// ErrUnknownLabel is returned when encoding a label outside the fitted set.
type ErrUnknownLabel struct {
	Label string
}

func (e *ErrUnknownLabel) Error() string {
	return fmt.Sprintf("unknown label %q", e.Label)
}

// Codec is a bijection between emotion names and dense zero-based class
// indices. Indices follow the lexical order of the distinct names.
type Codec struct {
	classes []string
	index   map[string]int
}

// Fit builds a codec from every label in the training data, duplicates
// included.
func Fit(labels []string) (*Codec, error) {
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	seen := make(map[string]bool)
	var classes []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)
	return newCodec(classes), nil
}

func newCodec(classes []string) *Codec {
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return &Codec{classes: classes, index: idx}
}

// Len returns the number of classes.
func (c *Codec) Len() int {
	if c == nil {
		return 0
	}
	return len(c.classes)
}

// Classes returns the class names in index order.
func (c *Codec) Classes() []string {
	out := make([]string, len(c.classes))
	copy(out, c.classes)
	return out
}

// Encode returns the index of label.
func (c *Codec) Encode(label string) (int, error) {
	if c.Len() == 0 {
		return 0, &ErrNotFitted{Op: "encode"}
	}
	i, ok := c.index[label]
	if !ok {
		return 0, &ErrUnknownLabel{Label: label}
	}
	return i, nil
}

// EncodeAll encodes every label, failing on the first unknown one.
func (c *Codec) EncodeAll(labels []string) ([]int, error) {
	out := make([]int, len(labels))
	for i, l := range labels {
		idx, err := c.Encode(l)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// Decode returns the label at index i.
func (c *Codec) Decode(i int) (string, error) {
	if c.Len() == 0 {
		return "", &ErrNotFitted{Op: "decode"}
	}
	if i < 0 || i >= len(c.classes) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", i, len(c.classes))
	}
	return c.classes[i], nil
}

// MarshalBinary encodes the class list.
func (c *Codec) MarshalBinary() ([]byte, error) {
	if c.Len() == 0 {
		return nil, &ErrNotFitted{Op: "marshal"}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c.classes); err != nil {
		return nil, fmt.Errorf("encode label codec: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a codec encoded by MarshalBinary.
func (c *Codec) UnmarshalBinary(data []byte) error {
	var classes []string
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&classes); err != nil {
		return fmt.Errorf("decode label codec: %w", err)
	}
	if len(classes) == 0 {
		return fmt.Errorf("decode label codec: %w", ErrNoLabels)
	}
	if !sort.StringsAreSorted(classes) {
		return fmt.Errorf("decode label codec: classes not in lexical order")
	}
	*c = *newCodec(classes)
	return nil
}
