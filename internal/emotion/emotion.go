package emotion

import (
	"fmt"
	"strings"
)

// Canonical labels of the synthetic augmentation set. An external corpus may
// contribute labels beyond these; the label codec is built from whatever
// distinct set the training data actually carries.
const (
	Happy   = "Happy"
	Sad     = "Sad"
	Angry   = "Angry"
	Stress  = "Stress"
	Neutral = "Neutral"
)

// Canonical returns the five built-in labels in display order.
func Canonical() []string {
	return []string{Happy, Sad, Angry, Stress, Neutral}
}

// Example is one labelled sample used only during training.
type Example struct {
	Text    string `csv:"text"`
	Emotion string `csv:"emotion"`
}

// Validate checks that both fields carry content after trimming.
func (e Example) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return fmt.Errorf("example text is empty")
	}
	if strings.TrimSpace(e.Emotion) == "" {
		return fmt.Errorf("example %q has no emotion label", e.Text)
	}
	return nil
}

// Texts projects the text column of a set of examples.
func Texts(examples []Example) []string {
	out := make([]string, len(examples))
	for i, e := range examples {
		out[i] = e.Text
	}
	return out
}

// Labels projects the emotion column of a set of examples.
func Labels(examples []Example) []string {
	out := make([]string, len(examples))
	for i, e := range examples {
		out[i] = e.Emotion
	}
	return out
}
