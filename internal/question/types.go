package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
)

// Difficulty bounds applied by AdjustDifficulty.
const (
	MinDifficulty = 1
	MaxDifficulty = 10
)

// Type tags how a question was authored.
type Type string

const (
	TypeAIGenerated Type = "AI_GENERATED"
	TypePredefined  Type = "PREDEFINED"
)

var (
	// ErrNotFound is returned when no question has the requested id.
	ErrNotFound = errors.New("question not found")
	// ErrInvalidQuestion is returned by Import for malformed authored questions.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrInvalidFilter is returned by List when no filter is set.
	ErrInvalidFilter = errors.New("at least one of type or difficulty is required")
	// ErrUnknownType is returned by ParseType.
	ErrUnknownType = errors.New("unknown question type")
)

// ParseType accepts the canonical names in any case.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

func (t Type) Valid() bool {
	return t == TypeAIGenerated || t == TypePredefined
}

// Question is a single trivia item. CorrectAnswer never leaves the server through Public.
type Question struct {
	ID              int64    `json:"id"`
	Text            string   `json:"questionText"`
	PossibleAnswers []string `json:"possibleAnswers"`
	CorrectAnswer   string   `json:"correctAnswer,omitempty"`
	DifficultyLevel int      `json:"difficultyLevel"`
	Type            Type     `json:"questionType"`
}

// Public returns a copy safe to send to players.
func (q Question) Public() Question {
	q.CorrectAnswer = ""
	return q
}

// Validate checks the authoring invariants. Lookups never call it.
func (q Question) Validate() error {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return fmt.Errorf("%w: question text is empty", ErrInvalidQuestion)
	case len(q.PossibleAnswers) < 2:
		return fmt.Errorf("%w: need at least two possible answers", ErrInvalidQuestion)
	case q.DifficultyLevel < MinDifficulty || q.DifficultyLevel > MaxDifficulty:
		return fmt.Errorf("%w: difficulty %d outside [%d,%d]", ErrInvalidQuestion, q.DifficultyLevel, MinDifficulty, MaxDifficulty)
	case !q.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, q.Type)
	}
	for _, a := range q.PossibleAnswers {
		if a == q.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("%w: correct answer %q is not among the possible answers", ErrInvalidQuestion, q.CorrectAnswer)
}

// Evaluation is the outcome of checking one submitted answer.
type Evaluation struct {
	QuestionID      int64
	Correct         bool
	DifficultyLevel int
}

// Filter selects questions for List. Nil fields are unconstrained.
type Filter struct {
	Type       *Type
	Difficulty *int
}

// Store is the persistence capability the service needs.
// Implemented by repository.QuestionRepository.
type Store interface {
	FindByDifficulty(ctx context.Context, level int32) ([]sqlcgen.Question, error)
	FindByType(ctx context.Context, questionType string) ([]sqlcgen.Question, error)
	FindByDifficultyAndType(ctx context.Context, level int32, questionType string) ([]sqlcgen.Question, error)
	FindByID(ctx context.Context, id int64) (sqlcgen.Question, error)
	InsertAll(ctx context.Context, params []sqlcgen.InsertQuestionParams) ([]sqlcgen.Question, error)
}
