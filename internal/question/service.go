package question

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/heist-trivia/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
	"github.com/gokatarajesh/heist-trivia/internal/metrics"
)

// Service implements question selection, answer checking and question import.
type Service struct {
	store   Store
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

type ServiceOptions struct {
	Metrics *metrics.Metrics
}

func NewService(store Store, logger zerolog.Logger, opts ServiceOptions) *Service {
	return &Service{
		store:   store,
		metrics: opts.Metrics,
		logger:  logger.With().Str("component", "question").Logger(),
	}
}

// NextQuestion returns the first stored question whose level equals difficulty, or
// nil when none matches. An empty result is not an error.
func (s *Service) NextQuestion(ctx context.Context, difficulty int) (*Question, error) {
	if !storable(difficulty) {
		s.metrics.QuestionServed(false)
		return nil, nil
	}

	rows, err := s.store.FindByDifficulty(ctx, int32(difficulty))
	if err != nil {
		return nil, fmt.Errorf("find questions at difficulty %d: %w", difficulty, err)
	}
	if len(rows) == 0 {
		s.metrics.QuestionServed(false)
		s.logger.Debug().Int("difficulty", difficulty).Msg("no question at difficulty")
		return nil, nil
	}

	// TODO: always serving rows[0] repeats the same question; pick randomly and skip
	// questions already served in the caller's session.
	q := toDomain(rows[0])
	s.metrics.QuestionServed(true)
	return &q, nil
}

// CheckAnswer reports whether answer equals the stored correct answer exactly.
// A missing question yields ErrNotFound, never false.
func (s *Service) CheckAnswer(ctx context.Context, questionID int64, answer string) (bool, error) {
	eval, err := s.Evaluate(ctx, questionID, answer)
	if err != nil {
		return false, err
	}
	return eval.Correct, nil
}

// Evaluate is CheckAnswer plus the level of the question, used for scoring.
func (s *Service) Evaluate(ctx context.Context, questionID int64, answer string) (Evaluation, error) {
	row, err := s.store.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.AnswerChecked(metrics.OutcomeNotFound)
			return Evaluation{}, fmt.Errorf("question %d: %w", questionID, ErrNotFound)
		}
		return Evaluation{}, fmt.Errorf("load question %d: %w", questionID, err)
	}

	correct := row.CorrectAnswer == answer
	if correct {
		s.metrics.AnswerChecked(metrics.OutcomeCorrect)
	} else {
		s.metrics.AnswerChecked(metrics.OutcomeIncorrect)
	}

	return Evaluation{
		QuestionID:      row.ID,
		Correct:         correct,
		DifficultyLevel: int(row.DifficultyLevel),
	}, nil
}

// List returns questions matching the filter in store order. A difficulty no stored
// question can have matches nothing.
func (s *Service) List(ctx context.Context, f Filter) ([]Question, error) {
	if f.Type == nil && f.Difficulty == nil {
		return nil, ErrInvalidFilter
	}
	if f.Difficulty != nil && !storable(*f.Difficulty) {
		return []Question{}, nil
	}

	var (
		rows []sqlcgen.Question
		err  error
	)
	switch {
	case f.Type != nil && f.Difficulty != nil:
		rows, err = s.store.FindByDifficultyAndType(ctx, int32(*f.Difficulty), string(*f.Type))
	case f.Type != nil:
		rows, err = s.store.FindByType(ctx, string(*f.Type))
	default:
		rows, err = s.store.FindByDifficulty(ctx, int32(*f.Difficulty))
	}
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// Import validates every question first and then stores them in one batch. Questions
// already stored with the same text and difficulty are skipped, so importing a bank
// twice is harmless. Only newly stored questions are returned.
func (s *Service) Import(ctx context.Context, questions []Question) ([]Question, error) {
	params := make([]sqlcgen.InsertQuestionParams, 0, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question #%d: %w", i+1, err)
		}
		params = append(params, sqlcgen.InsertQuestionParams{
			QuestionText:    q.Text,
			PossibleAnswers: q.PossibleAnswers,
			CorrectAnswer:   q.CorrectAnswer,
			DifficultyLevel: int32(q.DifficultyLevel),
			QuestionType:    string(q.Type),
		})
	}

	rows, err := s.store.InsertAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("import questions: %w", err)
	}

	stored := make([]Question, 0, len(rows))
	for _, row := range rows {
		stored = append(stored, toDomain(row))
	}
	s.logger.Info().
		Int("count", len(stored)).
		Int("skipped", len(questions)-len(stored)).
		Msg("questions imported")
	return stored, nil
}

// storable reports whether a difficulty fits the INTEGER column.
func storable(difficulty int) bool {
	return difficulty >= math.MinInt32 && difficulty <= math.MaxInt32
}

func toDomain(row sqlcgen.Question) Question {
	answers := row.PossibleAnswers
	if answers == nil {
		answers = []string{}
	}
	return Question{
		ID:              row.ID,
		Text:            row.QuestionText,
		PossibleAnswers: answers,
		CorrectAnswer:   row.CorrectAnswer,
		DifficultyLevel: int(row.DifficultyLevel),
		Type:            Type(row.QuestionType),
	}
}
