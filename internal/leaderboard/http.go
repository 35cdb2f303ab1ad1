package leaderboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/heist-trivia/internal/logging"
	httperrors "github.com/gokatarajesh/heist-trivia/pkg/http/errors"
)

// HTTPHandler exposes read-only REST endpoints for the boards. Scores are written only
// by the session service when a game finishes.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a leaderboard HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger,
	}
}

// log prefers the request-scoped logger installed by the router middleware.
func (h *HTTPHandler) log(r *http.Request) zerolog.Logger {
	return logging.FromContextOr(r.Context(), h.logger).With().Str("component", "leaderboard_http").Logger()
}

// HandleHigh responds with the high score board.
// Route: GET /api/scores/high?limit=10
func (h *HTTPHandler) HandleHigh(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Top(r.Context(), parseLimit(r))
	if err != nil {
		logger := h.log(r)
		logger.Warn().Err(err).Msg("high score fetch failed")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeLeaderboardFetchFailed, "failed to fetch leaderboard")
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"top":         entries,
		"retrievedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleRoom responds with a finished room's board.
// Route: GET /api/scores/rooms/{roomCode}?limit=10
func (h *HTTPHandler) HandleRoom(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "roomCode")
	entries, err := h.svc.RoomTop(r.Context(), roomCode, parseLimit(r))
	if err != nil {
		logger := h.log(r)
		logger.Warn().Err(err).Str("room_code", roomCode).Msg("room board fetch failed")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeLeaderboardFetchFailed, "failed to fetch leaderboard")
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"roomCode":    roomCode,
		"top":         entries,
		"retrievedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func parseLimit(r *http.Request) int {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return limit
}
