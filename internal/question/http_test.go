package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/heist-trivia/internal/logging"
)

func newTestRouter(store Store) http.Handler {
	h := NewHTTPHandlers(newTestService(store), zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/api/questions", h.List)
	r.Get("/api/questions/next", h.NextQuestion)
	r.Post("/api/questions/{questionId}/check", h.CheckAnswer)
	return r
}

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHTTPNextQuestionHidesAnswer(t *testing.T) {
	router := newTestRouter(newMemoryStore(sqlQuestion(7, 3, "Paris")))

	rec := serve(t, router, http.MethodGet, "/api/questions/next?difficulty=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 7, body["id"])
	assert.EqualValues(t, 3, body["difficultyLevel"])
	assert.Equal(t, "PREDEFINED", body["questionType"])
	assert.NotContains(t, body, "correctAnswer")
}

func TestHTTPNextQuestionDefaultsToOne(t *testing.T) {
	router := newTestRouter(newMemoryStore(sqlQuestion(1, 1, "A")))

	rec := serve(t, router, http.MethodGet, "/api/questions/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
}

func TestHTTPNextQuestionMissIsNull(t *testing.T) {
	router := newTestRouter(newMemoryStore())

	rec := serve(t, router, http.MethodGet, "/api/questions/next?difficulty=42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestHTTPNextQuestionRejectsNonInteger(t *testing.T) {
	router := newTestRouter(newMemoryStore())

	rec := serve(t, router, http.MethodGet, "/api/questions/next?difficulty=hard", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_difficulty")
}

func TestHTTPCheckAnswer(t *testing.T) {
	router := newTestRouter(newMemoryStore(sqlQuestion(1, 3, "Paris")))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"json string", `"Paris"`, "true"},
		{"raw text", `Paris`, "true"},
		{"case differs", `"paris"`, "false"},
		{"empty", ``, "false"},
		{"padded json string", `  "Paris"  `, "false"},
		{"json string with trailing newline", "\"Paris\"\n", "false"},
		{"raw text with trailing newline", "Paris\n", "false"},
		{"raw text with leading space", " Paris", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, router, http.MethodPost, "/api/questions/1/check", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestHTTPCheckAnswerUnknownQuestion(t *testing.T) {
	router := newTestRouter(newMemoryStore())

	rec := serve(t, router, http.MethodPost, "/api/questions/9999/check", `"Paris"`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}

func TestHTTPCheckAnswerBadID(t *testing.T) {
	router := newTestRouter(newMemoryStore())

	rec := serve(t, router, http.MethodPost, "/api/questions/abc/check", `"Paris"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_question_id")
}

func TestHTTPList(t *testing.T) {
	router := newTestRouter(newMemoryStore(sqlQuestion(1, 3, "A"), sqlQuestion(2, 5, "B")))

	rec := serve(t, router, http.MethodGet, "/api/questions?type=predefined&difficulty=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.EqualValues(t, 2, got[0]["id"])

	rec = serve(t, router, http.MethodGet, "/api/questions", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, router, http.MethodGet, "/api/questions?type=crowd", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeAnswer(t *testing.T) {
	assert.Equal(t, "Paris", DecodeAnswer([]byte(`"Paris"`)))
	assert.Equal(t, "Paris", DecodeAnswer([]byte(`Paris`)))
	assert.Equal(t, `"Par`, DecodeAnswer([]byte(`"Par`)))
	assert.Equal(t, `"`, DecodeAnswer([]byte(`"`)))
	assert.Equal(t, "", DecodeAnswer([]byte(`""`)))
	assert.Equal(t, "42", DecodeAnswer([]byte(`42`)))
	assert.Equal(t, `"a"b"`, DecodeAnswer([]byte(`"a"b"`)))
	assert.Equal(t, `  "Paris"  `, DecodeAnswer([]byte(`  "Paris"  `)))
	assert.Equal(t, "\"Paris\"\n", DecodeAnswer([]byte("\"Paris\"\n")))
}

func TestHTTPErrorsUseRequestLogger(t *testing.T) {
	store := newMemoryStore()
	store.failErr = errors.New("connection reset")
	router := newTestRouter(store)

	var buf bytes.Buffer
	reqLogger := zerolog.New(&buf).With().Str("request_id", "req-42").Logger()
	req := httptest.NewRequest(http.MethodGet, "/api/questions/next?difficulty=3", nil)
	req = req.WithContext(logging.IntoContext(req.Context(), reqLogger))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"component":"question_http"`)
	assert.Contains(t, buf.String(), "next question lookup failed")
}
