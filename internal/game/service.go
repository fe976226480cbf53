package game

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
	"github.com/aminaaguel/Guess-My-Emotion/internal/store"
)

// Predictor classifies text. *predictor.Predictor implements it, including
// a nil pointer which reports not ready.
type Predictor interface {
	Ready() bool
	RunID() string
	Classes() []string
	Predict(text string, kind classifier.Kind) (*predictor.PredictionResult, error)
}

// RoundRecorder receives every completed round. store.RoundRepo implements it.
type RoundRecorder interface {
	AppendRound(ctx context.Context, data store.RoundEventData) error
}

// Options configures a Service. The zero value is usable.
type Options struct {
	// DefaultModel is used by PredictRound. Defaults to the tree ensemble.
	DefaultModel classifier.Kind

	// Recorder, when set, gets a copy of each completed round.
	Recorder RoundRecorder

	// SessionID tags recorded rounds. A random UUID is generated when empty.
	SessionID string

	Logger *zap.Logger
}

// RoundResult is the reply to one played round.
type RoundResult struct {
	PredictedEmotion string             `json:"predicted_emotion"`
	ModelUsed        string             `json:"model_used"`
	Confidence       float64            `json:"confidence"`
	Probabilities    map[string]float64 `json:"probabilities"`
	AIScore          int                `json:"ai_score"`
	UserScore        int                `json:"user_score"`
	AICorrect        bool               `json:"ai_correct"`
	UserWon          bool               `json:"user_won"`
	TotalRounds      int                `json:"total_rounds"`
}

// Health describes the service without changing it.
type Health struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
	GameState    State  `json:"game_state"`
}

// Service plays rounds: it asks the predictor for a label, scores it against
// the player's declared emotion and keeps the scoreboard.
type Service struct {
	predictor    Predictor
	scorer       *Scorer
	defaultModel classifier.Kind
	recorder     RoundRecorder
	sessionID    string
	logger       *zap.Logger
}

// NewService creates a game service. p may be nil or not ready, in which
// case every round fails with *predictor.ErrModelsNotLoaded.
func NewService(p Predictor, opts Options) *Service {
	s := &Service{
		predictor:    p,
		scorer:       NewScorer(),
		defaultModel: opts.DefaultModel,
		recorder:     opts.Recorder,
		sessionID:    opts.SessionID,
		logger:       opts.Logger,
	}
	if s.defaultModel == "" {
		s.defaultModel = classifier.TreeEnsemble
	}
	if s.sessionID == "" {
		s.sessionID = uuid.New().String()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// SessionID identifies this service's rounds in the history.
func (s *Service) SessionID() string {
	return s.sessionID
}

// DefaultModel is the model used by PredictRound.
func (s *Service) DefaultModel() classifier.Kind {
	return s.defaultModel
}

// ModelsLoaded reports whether rounds can be played.
func (s *Service) ModelsLoaded() bool {
	return s.predictor != nil && s.predictor.Ready()
}

// Classes lists the emotions the loaded models can predict.
func (s *Service) Classes() []string {
	if !s.ModelsLoaded() {
		return nil
	}
	return s.predictor.Classes()
}

// PredictRound plays one round with the default model.
func (s *Service) PredictRound(ctx context.Context, text, userEmotion string) (*RoundResult, error) {
	return s.PredictRoundWith(ctx, text, userEmotion, s.defaultModel)
}

// PredictRoundWith plays one round with the given model. The scoreboard is
// only touched once a prediction succeeded.
func (s *Service) PredictRoundWith(ctx context.Context, text, userEmotion string, kind classifier.Kind) (*RoundResult, error) {
	text = strings.TrimSpace(text)
	userEmotion = strings.TrimSpace(userEmotion)
	if text == "" {
		return nil, &ErrEmptyInput{Field: FieldText}
	}
	if userEmotion == "" {
		return nil, &ErrEmptyInput{Field: FieldUserEmotion}
	}
	if !s.ModelsLoaded() {
		return nil, &predictor.ErrModelsNotLoaded{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pred, err := s.predictor.Predict(text, kind)
	if err != nil {
		s.logger.Error("prediction failed", zap.String("model", string(kind)), zap.Error(err))
		return nil, err
	}

	outcome := s.scorer.RecordRound(pred.Emotion, userEmotion)
	s.logger.Info("round played",
		zap.String("predicted", pred.Emotion),
		zap.String("declared", userEmotion),
		zap.Float64("confidence", pred.Confidence),
		zap.Bool("ai_correct", outcome.AICorrect),
		zap.Int("total_rounds", outcome.State.TotalRounds),
	)

	if s.recorder != nil {
		err := s.recorder.AppendRound(ctx, store.RoundEventData{
			SessionID:        s.sessionID,
			RunID:            s.predictor.RunID(),
			Text:             text,
			UserEmotion:      userEmotion,
			PredictedEmotion: pred.Emotion,
			ModelUsed:        pred.ModelUsed,
			Confidence:       pred.Confidence,
			AICorrect:        outcome.AICorrect,
		})
		if err != nil {
			s.logger.Warn("failed to record round", zap.Error(err))
		}
	}

	return &RoundResult{
		PredictedEmotion: pred.Emotion,
		ModelUsed:        pred.ModelUsed,
		Confidence:       pred.Confidence,
		Probabilities:    pred.Probabilities,
		AIScore:          outcome.State.AIScore,
		UserScore:        outcome.State.UserScore,
		AICorrect:        outcome.AICorrect,
		UserWon:          outcome.UserWon,
		TotalRounds:      outcome.State.TotalRounds,
	}, nil
}

// ResetRound zeroes the scoreboard. Round history is not affected.
func (s *Service) ResetRound() State {
	st := s.scorer.Reset()
	s.logger.Info("game reset")
	return st
}

// State returns the current scoreboard.
func (s *Service) State() State {
	return s.scorer.State()
}

// HealthStatus reports readiness and the scoreboard.
func (s *Service) HealthStatus() Health {
	return Health{
		Status:       "healthy",
		ModelsLoaded: s.ModelsLoaded(),
		GameState:    s.scorer.State(),
	}
}
