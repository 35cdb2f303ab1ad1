package question

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/heist-trivia/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
)

// memoryStore keeps rows in insertion order, which stands in for the id ordering
// of the SQL queries.
type memoryStore struct {
	rows    []sqlcgen.Question
	nextID  int64
	failErr error
}

func newMemoryStore(rows ...sqlcgen.Question) *memoryStore {
	s := &memoryStore{nextID: 1}
	for _, r := range rows {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
		s.rows = append(s.rows, r)
	}
	return s
}

func (s *memoryStore) filter(keep func(sqlcgen.Question) bool) ([]sqlcgen.Question, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	out := []sqlcgen.Question{}
	for _, r := range s.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) FindByDifficulty(_ context.Context, level int32) ([]sqlcgen.Question, error) {
	return s.filter(func(q sqlcgen.Question) bool { return q.DifficultyLevel == level })
}

func (s *memoryStore) FindByType(_ context.Context, questionType string) ([]sqlcgen.Question, error) {
	return s.filter(func(q sqlcgen.Question) bool { return q.QuestionType == questionType })
}

func (s *memoryStore) FindByDifficultyAndType(_ context.Context, level int32, questionType string) ([]sqlcgen.Question, error) {
	return s.filter(func(q sqlcgen.Question) bool {
		return q.DifficultyLevel == level && q.QuestionType == questionType
	})
}

func (s *memoryStore) FindByID(_ context.Context, id int64) (sqlcgen.Question, error) {
	if s.failErr != nil {
		return sqlcgen.Question{}, s.failErr
	}
	for _, r := range s.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return sqlcgen.Question{}, repository.ErrNotFound
}

func (s *memoryStore) InsertAll(_ context.Context, params []sqlcgen.InsertQuestionParams) ([]sqlcgen.Question, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	created := []sqlcgen.Question{}
	for _, p := range params {
		if s.has(p.QuestionText, p.DifficultyLevel) {
			continue
		}
		row := sqlcgen.Question{
			ID:              s.nextID,
			QuestionText:    p.QuestionText,
			PossibleAnswers: p.PossibleAnswers,
			CorrectAnswer:   p.CorrectAnswer,
			DifficultyLevel: p.DifficultyLevel,
			QuestionType:    p.QuestionType,
		}
		s.nextID++
		s.rows = append(s.rows, row)
		created = append(created, row)
	}
	return created, nil
}

func (s *memoryStore) has(text string, level int32) bool {
	for _, r := range s.rows {
		if r.QuestionText == text && r.DifficultyLevel == level {
			return true
		}
	}
	return false
}

func sqlQuestion(id int64, difficulty int32, correct string) sqlcgen.Question {
	return sqlcgen.Question{
		ID:              id,
		QuestionText:    "Prompt",
		PossibleAnswers: []string{correct, "Rome", "Madrid"},
		CorrectAnswer:   correct,
		DifficultyLevel: difficulty,
		QuestionType:    string(TypePredefined),
	}
}

func newTestService(store Store) *Service {
	return NewService(store, zerolog.Nop(), ServiceOptions{})
}

func TestNextQuestionReturnsFirstMatch(t *testing.T) {
	store := newMemoryStore(
		sqlQuestion(1, 2, "A"),
		sqlQuestion(2, 3, "Paris"),
		sqlQuestion(3, 3, "Berlin"),
	)
	svc := newTestService(store)

	q, err := svc.NextQuestion(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int64(2), q.ID)
	assert.Equal(t, 3, q.DifficultyLevel)

	again, err := svc.NextQuestion(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, q.ID, again.ID, "selection is deterministic for an unchanged store")
}

func TestNextQuestionEmptyIsAbsentNotError(t *testing.T) {
	svc := newTestService(newMemoryStore(sqlQuestion(1, 2, "A")))

	for _, d := range []int{0, 1, 3, 10, 11, -4} {
		q, err := svc.NextQuestion(context.Background(), d)
		assert.NoError(t, err, "difficulty %d", d)
		assert.Nil(t, q, "difficulty %d", d)
	}
}

func TestNextQuestionPropagatesStoreError(t *testing.T) {
	store := newMemoryStore()
	store.failErr = errors.New("db down")
	svc := newTestService(store)

	q, err := svc.NextQuestion(context.Background(), 1)
	assert.Nil(t, q)
	assert.ErrorContains(t, err, "db down")
}

func TestCheckAnswerExactMatch(t *testing.T) {
	svc := newTestService(newMemoryStore(sqlQuestion(1, 3, "Paris")))
	ctx := context.Background()

	cases := map[string]bool{
		"Paris":  true,
		"paris":  false,
		"PARIS":  false,
		" Paris": false,
		"Paris ": false,
		"":       false,
		"Rome":   false,
	}
	for answer, want := range cases {
		got, err := svc.CheckAnswer(ctx, 1, answer)
		require.NoError(t, err)
		assert.Equal(t, want, got, "answer %q", answer)
	}
}

func TestCheckAnswerUnknownQuestion(t *testing.T) {
	svc := newTestService(newMemoryStore(sqlQuestion(1, 3, "Paris")))

	ok, err := svc.CheckAnswer(context.Background(), 9999, "Paris")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvaluateReportsDifficulty(t *testing.T) {
	svc := newTestService(newMemoryStore(sqlQuestion(4, 7, "42")))

	eval, err := svc.Evaluate(context.Background(), 4, "42")
	require.NoError(t, err)
	assert.Equal(t, Evaluation{QuestionID: 4, Correct: true, DifficultyLevel: 7}, eval)
}

func TestScenarioParis(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	stored, err := svc.Import(ctx, []Question{{
		Text:            "What is the capital of France?",
		PossibleAnswers: []string{"Berlin", "Paris", "Madrid"},
		CorrectAnswer:   "Paris",
		DifficultyLevel: 3,
		Type:            TypePredefined,
	}})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	id := stored[0].ID

	q, err := svc.NextQuestion(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, id, q.ID)

	ok, err := svc.CheckAnswer(ctx, id, "Paris")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAnswer(ctx, id, "paris")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CheckAnswer(ctx, 9999, "Paris")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	ai := sqlQuestion(5, 3, "X")
	ai.QuestionType = string(TypeAIGenerated)
	svc := newTestService(newMemoryStore(sqlQuestion(1, 3, "A"), sqlQuestion(2, 4, "B"), ai))
	ctx := context.Background()

	aiType := TypeAIGenerated
	predefined := TypePredefined
	three := 3

	got, err := svc.List(ctx, Filter{Type: &aiType})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)

	got, err = svc.List(ctx, Filter{Difficulty: &three})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(ctx, Filter{Type: &predefined, Difficulty: &three})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	_, err = svc.List(ctx, Filter{})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestImportRejectsInvalidBeforeInserting(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.Import(context.Background(), []Question{
		{Text: "ok", PossibleAnswers: []string{"a", "b"}, CorrectAnswer: "a", DifficultyLevel: 1, Type: TypePredefined},
		{Text: "bad", PossibleAnswers: []string{"a", "b"}, CorrectAnswer: "c", DifficultyLevel: 1, Type: TypePredefined},
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)
	assert.ErrorContains(t, err, "question #2")
	assert.Empty(t, store.rows)
}

func TestImportTwiceSkipsStoredQuestions(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()
	bank := []Question{
		{Text: "Capital of France?", PossibleAnswers: []string{"Paris", "Rome"}, CorrectAnswer: "Paris", DifficultyLevel: 3, Type: TypePredefined},
		{Text: "Capital of Italy?", PossibleAnswers: []string{"Paris", "Rome"}, CorrectAnswer: "Rome", DifficultyLevel: 3, Type: TypePredefined},
	}

	first, err := svc.Import(ctx, bank)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.Import(ctx, bank)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, store.rows, 2)

	q, err := svc.NextQuestion(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, q.ID)
}

func TestImportStoreFailureStoresNothing(t *testing.T) {
	store := newMemoryStore()
	store.failErr = errors.New("connection reset")
	svc := newTestService(store)

	got, err := svc.Import(context.Background(), []Question{
		{Text: "ok", PossibleAnswers: []string{"a", "b"}, CorrectAnswer: "a", DifficultyLevel: 1, Type: TypePredefined},
	})
	assert.ErrorContains(t, err, "connection reset")
	assert.Nil(t, got)
	assert.Empty(t, store.rows)
}

func TestListDifficultyOutsideColumnRange(t *testing.T) {
	svc := newTestService(newMemoryStore(sqlQuestion(1, 3, "A")))
	huge := 1<<32 + 3

	got, err := svc.List(context.Background(), Filter{Difficulty: &huge})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	predefined := TypePredefined
	got, err = svc.List(context.Background(), Filter{Type: &predefined, Difficulty: &huge})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPublicHidesCorrectAnswer(t *testing.T) {
	q := Question{ID: 1, Text: "t", CorrectAnswer: "secret"}
	assert.Empty(t, q.Public().CorrectAnswer)
	assert.Equal(t, "secret", q.CorrectAnswer)
}
