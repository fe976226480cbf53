package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/game"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
)

type stubPredictor struct {
	err error
}

func (p *stubPredictor) Ready() bool       { return true }
func (p *stubPredictor) RunID() string     { return "run" }
func (p *stubPredictor) Classes() []string { return []string{"Happy", "Sad"} }

func (p *stubPredictor) Predict(text string, kind classifier.Kind) (*predictor.PredictionResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &predictor.PredictionResult{
		Emotion:       "Happy",
		Confidence:    0.9,
		ModelUsed:     kind.DisplayName(),
		Probabilities: map[string]float64{"Happy": 0.9, "Sad": 0.1},
	}, nil
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestPredictAndReset(t *testing.T) {
	srv := NewServer(game.NewService(&stubPredictor{}, game.Options{}), nil)

	rec, out := do(t, srv, http.MethodPost, "/predict", `{"text":"I'm feeling great!","user_emotion":"happy"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Happy", out["predicted_emotion"])
	assert.Equal(t, "Random Forest", out["model_used"])
	assert.Equal(t, true, out["ai_correct"])
	assert.Equal(t, false, out["user_won"])
	assert.Equal(t, float64(1), out["ai_score"])
	assert.Equal(t, float64(1), out["total_rounds"])
	assert.Contains(t, out, "probabilities")

	rec, out = do(t, srv, http.MethodPost, "/predict", `{"text":"meh","user_emotion":"Sad","model":"lr"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logistic Regression", out["model_used"])
	assert.Equal(t, float64(1), out["user_score"])
	assert.Equal(t, float64(2), out["total_rounds"])

	rec, out = do(t, srv, http.MethodPost, "/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Game reset successfully", out["message"])

	rec, out = do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, true, out["models_loaded"])
	assert.Equal(t, map[string]interface{}{
		"ai_score": float64(0), "user_score": float64(0), "total_rounds": float64(0),
	}, out["game_state"])
}

func TestPredictErrors(t *testing.T) {
	tests := []struct {
		name   string
		pred   game.Predictor
		body   string
		status int
		msg    string
	}{
		{"missing text", &stubPredictor{}, `{"user_emotion":"Happy"}`, http.StatusBadRequest, "No text provided"},
		{"blank emotion", &stubPredictor{}, `{"text":"hi","user_emotion":"  "}`, http.StatusBadRequest, "No emotion selected"},
		{"bad json", &stubPredictor{}, `{"text":`, http.StatusBadRequest, ""},
		{"bad model", &stubPredictor{}, `{"text":"hi","user_emotion":"Happy","model":"svm"}`, http.StatusBadRequest, ""},
		{"not loaded", nil, `{"text":"hi","user_emotion":"Happy"}`, http.StatusServiceUnavailable, "Models not loaded"},
		{"mismatch", &stubPredictor{err: &artifact.ErrMismatch{Reason: "dims"}}, `{"text":"hi","user_emotion":"Happy"}`, http.StatusServiceUnavailable, "Models not loaded"},
		{"internal", &stubPredictor{err: errors.New("boom")}, `{"text":"hi","user_emotion":"Happy"}`, http.StatusInternalServerError, "Prediction failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := game.NewService(tt.pred, game.Options{})
			rec, out := do(t, NewServer(svc, nil), http.MethodPost, "/predict", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			require.Contains(t, out, "error")
			if tt.msg != "" {
				assert.Equal(t, tt.msg, out["error"])
			}
			assert.Equal(t, game.State{}, svc.State())
		})
	}
}

func TestHealthWithoutModels(t *testing.T) {
	var p *predictor.Predictor
	srv := NewServer(game.NewService(p, game.Options{}), nil)

	rec, out := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["models_loaded"])
}

func TestMethodNotAllowed(t *testing.T) {
	srv := NewServer(game.NewService(&stubPredictor{}, game.Options{}), nil)
	req := httptest.NewRequest(http.MethodGet, "/predict", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
