package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
)

type questionStore interface {
	GetQuestion(ctx context.Context, id int64) (sqlcgen.Question, error)
	ListQuestionsByDifficulty(ctx context.Context, difficultyLevel int32) ([]sqlcgen.Question, error)
	ListQuestionsByType(ctx context.Context, questionType string) ([]sqlcgen.Question, error)
	ListQuestionsByDifficultyAndType(ctx context.Context, arg sqlcgen.ListQuestionsByDifficultyAndTypeParams) ([]sqlcgen.Question, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
}

// QuestionRepository wraps sqlc queries for the question bank.
type QuestionRepository struct {
	store questionStore
	tx    txRunner
}

// NewQuestionRepository constructs a question repository. A nil tx runs batch inserts
// directly against store.
func NewQuestionRepository(store questionStore, tx txRunner) *QuestionRepository {
	return &QuestionRepository{store: store, tx: tx}
}

func (r *QuestionRepository) inTx(ctx context.Context, fn func(ctx context.Context, store questionStore) error) error {
	if r.tx == nil {
		return fn(ctx, r.store)
	}
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, sqlcgen.New(tx))
	})
}

// FindByDifficulty returns every question at exactly the given level, ordered by id.
func (r *QuestionRepository) FindByDifficulty(ctx context.Context, level int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByDifficulty(ctx, level)
}

// FindByType returns every question of the given type, ordered by id.
func (r *QuestionRepository) FindByType(ctx context.Context, questionType string) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByType(ctx, questionType)
}

// FindByDifficultyAndType combines both filters.
func (r *QuestionRepository) FindByDifficultyAndType(ctx context.Context, level int32, questionType string) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByDifficultyAndType(ctx, sqlcgen.ListQuestionsByDifficultyAndTypeParams{
		DifficultyLevel: level,
		QuestionType:    questionType,
	})
}

// FindByID returns ErrNotFound when no question has the id.
func (r *QuestionRepository) FindByID(ctx context.Context, id int64) (sqlcgen.Question, error) {
	q, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		return sqlcgen.Question{}, translate(err)
	}
	return q, nil
}

// InsertAll stores authored questions in one transaction and returns the rows it created.
// A question whose text and difficulty are already stored is skipped; any other failure
// rolls the whole batch back.
func (r *QuestionRepository) InsertAll(ctx context.Context, params []sqlcgen.InsertQuestionParams) ([]sqlcgen.Question, error) {
	var created []sqlcgen.Question
	err := r.inTx(ctx, func(ctx context.Context, store questionStore) error {
		created = make([]sqlcgen.Question, 0, len(params))
		for i, p := range params {
			q, err := store.InsertQuestion(ctx, p)
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			if err != nil {
				return fmt.Errorf("insert question #%d: %w", i+1, translate(err))
			}
			created = append(created, q)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
