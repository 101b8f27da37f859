package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/services/game"
)

// SocketHandler serves the WebSocket endpoint and owns table resets so seat
// assignments change together with the table
type SocketHandler interface {
	http.Handler
	Reset(ctx context.Context) (*game.ResetGameOutput, error)
}

// Config holds the configuration for the HTTP handler
type Config struct {
	GameService game.Service

	// Socket is mounted at /socket
	Socket SocketHandler

	// OriginAllowlist lists the origins that get CORS headers
	OriginAllowlist []string

	Logger *zap.Logger
}

// Handler serves the HTTP routes of the server
type Handler struct {
	gameService game.Service
	socket      SocketHandler
	allowed     map[string]bool
	logger      *zap.Logger
	mux         *http.ServeMux
}

// New creates the HTTP handler with every route registered
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.Socket == nil {
		return nil, errors.New("socket handler cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Handler{
		gameService: cfg.GameService,
		socket:      cfg.Socket,
		allowed:     make(map[string]bool, len(cfg.OriginAllowlist)),
		logger:      logger,
		mux:         http.NewServeMux(),
	}
	for _, origin := range cfg.OriginAllowlist {
		if origin != "" {
			h.allowed[origin] = true
		}
	}

	h.mux.HandleFunc("GET /{$}", h.handleIndex)
	h.mux.HandleFunc("GET /api/reset", h.handleReset)
	h.mux.HandleFunc("GET /api/deck", h.handleDeck)
	h.mux.HandleFunc("GET /api/state", h.handleState)
	h.mux.HandleFunc("GET /api/standings", h.handleStandings)
	h.mux.Handle("GET /socket", h.socket)

	return h, nil
}

// ServeHTTP adds CORS headers for allowed origins and dispatches the route
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" && h.allowed[origin] {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Briscola server is running!"))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	output, err := h.socket.Reset(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"gameId": output.GameID})
}

func (h *Handler) handleDeck(w http.ResponseWriter, r *http.Request) {
	output, err := h.gameService.GetDeck(r.Context(), &game.GetDeckInput{})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.Cards)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	output, err := h.gameService.GetGameState(r.Context(), &game.GetGameStateInput{})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.State)
}

func (h *Handler) handleStandings(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	output, err := h.gameService.GetStandings(r.Context(), &game.GetStandingsInput{Limit: limit})
	if errors.Is(err, game.ErrPersistenceDisabled) {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output)
}
