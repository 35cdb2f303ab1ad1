package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/heist-trivia/internal/logging"
	httperrors "github.com/gokatarajesh/heist-trivia/pkg/http/errors"
)

const maxAnswerBytes = 4 << 10

// HTTPHandlers exposes the question endpoints under /api/questions.
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
	return logging.FromContextOr(r.Context(), h.logger).With().Str("component", "question_http").Logger()
}

// NextQuestion handles GET /api/questions/next?difficulty=N (default 1).
// A miss is a 200 with a JSON null body.
func (h *HTTPHandlers) NextQuestion(w http.ResponseWriter, r *http.Request) {
	difficulty := 1
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidDifficulty, "difficulty must be an integer", "difficulty")
			return
		}
		difficulty = int(parsed)
	}

	q, err := h.service.NextQuestion(r.Context(), difficulty)
	if err != nil {
		logger := h.log(r)
		logger.Error().Err(err).Int("difficulty", difficulty).Msg("next question lookup failed")
		httperrors.RespondInternalError(w, "failed to load question")
		return
	}
	if q == nil {
		httperrors.RespondJSON(w, http.StatusOK, nil)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, q.Public())
}

// CheckAnswer handles POST /api/questions/{questionId}/check. The body is the raw
// answer, compared byte for byte; a body that is exactly one JSON string literal is
// unquoted first. Unknown ids surface as 500.
func (h *HTTPHandlers) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionId"), 10, 64)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidQuestionID, "question id must be an integer")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxAnswerBytes))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "failed to read answer")
		return
	}

	correct, err := h.service.CheckAnswer(r.Context(), id, DecodeAnswer(body))
	if err != nil {
		logger := h.log(r)
		evt := logger.Error()
		if errors.Is(err, ErrNotFound) {
			evt = logger.Warn()
		}
		evt.Err(err).Int64("question_id", id).Msg("answer check failed")
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, correct)
}

// List handles GET /api/questions?type=PREDEFINED&difficulty=3.
func (h *HTTPHandlers) List(w http.ResponseWriter, r *http.Request) {
	var f Filter
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := ParseType(raw)
		if err != nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, err.Error(), "type")
			return
		}
		f.Type = &t
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidDifficulty, "difficulty must be an integer", "difficulty")
			return
		}
		d := int(parsed)
		f.Difficulty = &d
	}

	questions, err := h.service.List(r.Context(), f)
	if err != nil {
		if errors.Is(err, ErrInvalidFilter) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, err.Error())
			return
		}
		logger := h.log(r)
		logger.Error().Err(err).Msg("list questions failed")
		httperrors.RespondInternalError(w, "failed to list questions")
		return
	}

	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Public()
	}
	httperrors.RespondJSON(w, http.StatusOK, out)
}

// DecodeAnswer unquotes body when it starts and ends with a double quote and is a valid
// JSON string. Anything else, surrounding whitespace included, is returned unchanged.
func DecodeAnswer(body []byte) string {
	if len(body) < 2 || body[0] != '"' || body[len(body)-1] != '"' {
		return string(body)
	}
	var s string
	if err := json.Unmarshal(body, &s); err != nil {
		return string(body)
	}
	return s
}
