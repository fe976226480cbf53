package game

import "fmt"

// ErrEmptyInput is returned when a required round field is blank after
// trimming.
type ErrEmptyInput struct {
	Field string
}

func (e *ErrEmptyInput) Error() string {
	switch e.Field {
	case FieldText:
		return "No text provided"
	case FieldUserEmotion:
		return "No emotion selected"
	default:
		return fmt.Sprintf("%s is empty", e.Field)
	}
}

// Field names reported by ErrEmptyInput.
const (
	FieldText        = "text"
	FieldUserEmotion = "user_emotion"
)
