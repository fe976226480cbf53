package round

import "github.com/aminaaguel/Guess-My-Emotion/internal/game"

// roundResultMsg carries the outcome of a prediction started by the screen.
type roundResultMsg struct {
	Result *game.RoundResult
	Err    error
}
