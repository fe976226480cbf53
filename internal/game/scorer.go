package game

import (
	"strings"
	"sync"
)

// State is the running scoreboard of the current process.
type State struct {
	AIScore     int `json:"ai_score"`
	UserScore   int `json:"user_score"`
	TotalRounds int `json:"total_rounds"`
}

// RoundOutcome reports who won a round and the scoreboard right after it.
type RoundOutcome struct {
	AICorrect bool
	UserWon   bool
	State     State
}

// Scorer keeps the scoreboard. Every round lands on exactly one side, so
// AIScore + UserScore == TotalRounds at all times.
type Scorer struct {
	mu    sync.Mutex
	state State
}

// NewScorer returns a scorer at {0, 0, 0}.
func NewScorer() *Scorer {
	return &Scorer{}
}

// RecordRound scores one round. The model wins when its label equals the
// player's declared emotion, ignoring case.
func (s *Scorer) RecordRound(predicted, declared string) RoundOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.TotalRounds++
	aiCorrect := strings.EqualFold(predicted, declared)
	if aiCorrect {
		s.state.AIScore++
	} else {
		s.state.UserScore++
	}
	return RoundOutcome{
		AICorrect: aiCorrect,
		UserWon:   !aiCorrect,
		State:     s.state,
	}
}

// Reset zeroes the scoreboard.
func (s *Scorer) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.state
}

// State returns a snapshot of the scoreboard.
func (s *Scorer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
