package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/heist-trivia/internal/auth"
	"github.com/gokatarajesh/heist-trivia/internal/logging"
	"github.com/gokatarajesh/heist-trivia/internal/question"
	httperrors "github.com/gokatarajesh/heist-trivia/pkg/http/errors"
)

// HTTPHandlers exposes the room endpoints under /api/game.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger,
	}
}

// log prefers the request-scoped logger installed by the router middleware.
func (h *HTTPHandlers) log(r *http.Request) zerolog.Logger {
	return logging.FromContextOr(r.Context(), h.logger).With().Str("component", "session_http").Logger()
}

// Routes mounts the room endpoints. requirePlayer guards every mutation except create and join.
func (h *HTTPHandlers) Routes(r chi.Router, requirePlayer func(http.Handler) http.Handler) {
	r.Post("/", h.Create)
	r.Route("/{roomCode}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/players", h.Join)
		r.Group(func(r chi.Router) {
			r.Use(requirePlayer)
			r.Post("/start", h.Start)
			r.Post("/finish", h.Finish)
			r.Post("/advance", h.Advance)
			r.Post("/answers", h.SubmitAnswer)
		})
	})
}

type nameRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/game
func (h *HTTPHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	joined, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, r, err, httperrors.ErrCodeRoomCreationFailed)
		return
	}
	httperrors.RespondJSON(w, http.StatusCreated, joined)
}

// Get handles GET /api/game/{roomCode}
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	gs, err := h.service.Get(r.Context(), roomCode(r))
	if err != nil {
		h.respondError(w, r, err, httperrors.ErrCodeInternalError)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, gs)
}

// Join handles POST /api/game/{roomCode}/players
func (h *HTTPHandlers) Join(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	joined, err := h.service.Join(r.Context(), roomCode(r), req.Name)
	if err != nil {
		h.respondError(w, r, err, httperrors.ErrCodeJoinFailed)
		return
	}
	httperrors.RespondJSON(w, http.StatusCreated, joined)
}

// Start handles POST /api/game/{roomCode}/start
func (h *HTTPHandlers) Start(w http.ResponseWriter, r *http.Request) {
	code, playerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	gs, err := h.service.Start(r.Context(), code, playerID)
	if err != nil {
		h.respondError(w, r, err, httperrors.ErrCodeInternalError)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, gs)
}

// Finish handles POST /api/game/{roomCode}/finish
func (h *HTTPHandlers) Finish(w http.ResponseWriter, r *http.Request) {
	code, playerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	gs, err := h.service.Finish(r.Context(), code, playerID)
	if err != nil {
		h.respondError(w, r, err, httperrors.ErrCodeInternalError)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, gs)
}

// Advance handles POST /api/game/{roomCode}/advance
func (h *HTTPHandlers) Advance(w http.ResponseWriter, r *http.Request) {
	code, playerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	index, err := h.service.Advance(r.Context(), code, playerID)
	if err != nil {
		h.respondError(w, r, err, httperrors.ErrCodeInternalError)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]int{"currentQuestionIndex": index})
}

// SubmitAnswer handles POST /api/game/{roomCode}/answers
func (h *HTTPHandlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	code, playerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var sub AnswerSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), code, playerID, sub)
	if err != nil {
		h.respondError(w, r, err, httperrors.ErrCodeSubmitFailed)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, result)
}

// caller returns the room code and the authenticated player, rejecting tokens issued for other rooms.
func (h *HTTPHandlers) caller(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return "", uuid.Nil, false
	}
	code := roomCode(r)
	if claims.RoomCode != code {
		httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, "Token is not valid for this room")
		return "", uuid.Nil, false
	}
	return code, claims.PlayerID, true
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, vErr.Message, vErr.Field)
	case errors.Is(err, ErrRoomNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeRoomNotFound, err.Error())
	case errors.Is(err, ErrPlayerNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, err.Error())
	case errors.Is(err, question.ErrNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeQuestionNotFound, err.Error())
	case errors.Is(err, ErrRoomCodeTaken):
		httperrors.RespondConflict(w, httperrors.ErrCodeConflict, err.Error())
	case errors.Is(err, ErrNotJoinable):
		httperrors.RespondConflict(w, httperrors.ErrCodeGameNotJoinable, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		httperrors.RespondConflict(w, httperrors.ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, ErrGameNotActive):
		httperrors.RespondConflict(w, httperrors.ErrCodeGameNotActive, err.Error())
	case errors.Is(err, ErrAlreadyAnswered):
		httperrors.RespondConflict(w, httperrors.ErrCodeAlreadyAnswered, err.Error())
	case errors.Is(err, ErrNotHost):
		httperrors.RespondForbidden(w, httperrors.ErrCodeHostOnly, err.Error())
	default:
		logger := h.log(r)
		logger.Error().Err(err).Str("room_code", roomCode(r)).Msg("game request failed")
		httperrors.RespondError(w, http.StatusInternalServerError, fallbackCode, "request failed")
	}
}

func roomCode(r *http.Request) string {
	return NormalizeRoomCode(chi.URLParam(r, "roomCode"))
}
