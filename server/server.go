package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"snake-arcade/game"
	"snake-arcade/store"
)

// Game is the part of game.Loop the server drives.
type Game interface {
	Dispatch(action string) error
	Snapshot() game.Snapshot
	Subscribe(buffer int) (<-chan game.Signal, func())
}

// Scores is the leaderboard behind the /api/scores routes.
type Scores interface {
	Top(ctx context.Context, limit int) ([]store.Score, error)
	Stats(ctx context.Context) (store.Stats, error)
	Clear(ctx context.Context) error
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server exposes one game loop over HTTP and a websocket.
type Server struct {
	game      Game
	scores    Scores
	logger    *log.Logger
	fps       int
	upgrader  websocket.Upgrader
}

func NewServer(g Game, scores Scores, fps int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if fps <= 0 {
		fps = 30
	}
	return &Server{
		game:   g,
		scores: scores,
		logger: logger,
		fps:    fps,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes sets up the router. The timeout only applies to the JSON API so
// websocket sessions can stay open.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/state", s.handleState)
		r.Post("/actions", s.handleAction)
		r.Get("/scores", s.handleScores)
		r.Get("/scores/stats", s.handleStats)
		r.Delete("/scores", s.handleClearScores)
	})
	r.Get("/ws", s.handleWebSocket)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

// ActionRequest is the body of POST /api/actions and of websocket input.
type ActionRequest struct {
	Action string `json:"action"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.game.Dispatch(req.Action); err != nil {
		s.writeError(w, actionStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func actionStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrLoopStopped):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			s.writeError(w, http.StatusBadRequest, errors.New("limit must be between 1 and 100"))
			return
		}
		limit = n
	}
	top, err := s.scores.Top(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if top == nil {
		top = []store.Score{}
	}
	s.writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.scores.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleClearScores(w http.ResponseWriter, r *http.Request) {
	if err := s.scores.Clear(r.Context()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Printf("leaderboard cleared")
	w.WriteHeader(http.StatusNoContent)
}
