package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
}

// RoundEventData captures one completed round.
type RoundEventData struct {
	SessionID        string
	RunID            string
	Text             string
	UserEmotion      string
	PredictedEmotion string
	ModelUsed        string
	Confidence       float64
	AICorrect        bool
}

// RoundEventRecord is a stored round, newest first when queried.
type RoundEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	RoundEventData
}

// EmotionStats aggregates rounds by the emotion the player declared.
type EmotionStats struct {
	Emotion   string
	Rounds    int
	AICorrect int
}

// RoundStats summarises the whole round history.
type RoundStats struct {
	Rounds    int
	AICorrect int
	Sessions  int
	ByEmotion []EmotionStats
}

// UserWins is the number of rounds the model got wrong.
func (s RoundStats) UserWins() int {
	return s.Rounds - s.AICorrect
}

// RoundRepo is the append-only history of played rounds. It is an audit
// log; the live scoreboard never reads from it.
type RoundRepo interface {
	// AppendRound records a completed round.
	AppendRound(ctx context.Context, data RoundEventData) error

	// QueryRounds returns rounds newest first.
	QueryRounds(ctx context.Context, opts QueryOpts) ([]RoundEventRecord, error)

	// RoundStats aggregates all stored rounds.
	RoundStats(ctx context.Context) (RoundStats, error)

	// ClearRounds deletes every stored round and returns how many were removed.
	ClearRounds(ctx context.Context) (int64, error)
}
