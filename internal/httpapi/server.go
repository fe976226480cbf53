// Package httpapi exposes the game over HTTP with JSON bodies.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
	"github.com/aminaaguel/Guess-My-Emotion/internal/classifier"
	"github.com/aminaaguel/Guess-My-Emotion/internal/game"
	"github.com/aminaaguel/Guess-My-Emotion/internal/predictor"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Text        string `json:"text"`
	UserEmotion string `json:"user_emotion"`

	// Model optionally selects "linear" or "tree_ensemble".
	Model string `json:"model,omitempty"`
}

// MessageResponse is returned by POST /reset.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server routes requests to a game service.
type Server struct {
	svc    *game.Service
	logger *zap.Logger
	router *mux.Router
}

// NewServer builds the route table.
func NewServer(svc *game.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{svc: svc, logger: logger, router: mux.NewRouter()}

	s.router.HandleFunc("/predict", s.HandlePredict).Methods(http.MethodPost)
	s.router.HandleFunc("/reset", s.HandleReset).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	s.router.Use(s.logRequests)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// HandlePredict plays one round.
func (s *Server) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind := s.svc.DefaultModel()
	if req.Model != "" {
		k, err := classifier.ParseKind(req.Model)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = k
	}

	res, err := s.svc.PredictRoundWith(r.Context(), req.Text, req.UserEmotion, kind)
	if err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("prediction error", zap.Error(err))
		}
		s.writeError(w, status, msg)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// HandleReset zeroes the scoreboard.
func (s *Server) HandleReset(w http.ResponseWriter, r *http.Request) {
	s.svc.ResetRound()
	s.writeJSON(w, http.StatusOK, MessageResponse{Message: "Game reset successfully"})
}

// HandleHealth reports readiness and the scoreboard.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.HealthStatus())
}

// errorStatus maps a round error to an HTTP status and a client message.
func errorStatus(err error) (int, string) {
	var (
		empty     *game.ErrEmptyInput
		notLoaded *predictor.ErrModelsNotLoaded
		mismatch  *artifact.ErrMismatch
	)
	switch {
	case errors.As(err, &empty):
		return http.StatusBadRequest, empty.Error()
	case errors.As(err, &notLoaded), errors.As(err, &mismatch):
		return http.StatusServiceUnavailable, "Models not loaded"
	default:
		return http.StatusInternalServerError, "Prediction failed"
	}
}

func decode(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("error marshaling JSON: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
