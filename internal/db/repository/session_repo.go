package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
)

type sessionStore interface {
	CreateGameSession(ctx context.Context, arg sqlcgen.CreateGameSessionParams) (sqlcgen.GameSession, error)
	GetGameSession(ctx context.Context, roomCode string) (sqlcgen.GameSession, error)
	GetGameSessionForUpdate(ctx context.Context, roomCode string) (sqlcgen.GameSession, error)
	TransitionGameSession(ctx context.Context, arg sqlcgen.TransitionGameSessionParams) (sqlcgen.GameSession, error)
	AdvanceQuestionIndex(ctx context.Context, roomCode string) (int32, error)
	CreatePlayer(ctx context.Context, arg sqlcgen.CreatePlayerParams) (sqlcgen.Player, error)
	GetPlayer(ctx context.Context, arg sqlcgen.GetPlayerParams) (sqlcgen.Player, error)
	ListPlayersBySession(ctx context.Context, roomCode string) ([]sqlcgen.Player, error)
	AddPlayerScore(ctx context.Context, arg sqlcgen.AddPlayerScoreParams) (int32, error)
	InsertPlayerAnswer(ctx context.Context, arg sqlcgen.InsertPlayerAnswerParams) error
}

// ScoredAnswer is a graded submission credited to one player.
type ScoredAnswer struct {
	RoomCode   string
	PlayerID   uuid.UUID
	QuestionID int64
	Correct    bool
	Points     int32
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// SessionRepository contains DB helpers for game sessions and their players.
type SessionRepository struct {
	store sessionStore
	tx    txRunner
}

// NewSessionRepository constructs a session repository. A nil tx runs multi-statement
// operations directly against store.
func NewSessionRepository(store sessionStore, tx txRunner) *SessionRepository {
	return &SessionRepository{store: store, tx: tx}
}

func (r *SessionRepository) inTx(ctx context.Context, fn func(ctx context.Context, store sessionStore) error) error {
	if r.tx == nil {
		return fn(ctx, r.store)
	}
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, sqlcgen.New(tx))
	})
}

// CreateWithHost inserts the session row and its host player atomically.
func (r *SessionRepository) CreateWithHost(ctx context.Context, session sqlcgen.CreateGameSessionParams, host sqlcgen.CreatePlayerParams) (sqlcgen.GameSession, sqlcgen.Player, error) {
	var (
		created sqlcgen.GameSession
		player  sqlcgen.Player
	)
	err := r.inTx(ctx, func(ctx context.Context, store sessionStore) error {
		var err error
		created, err = store.CreateGameSession(ctx, session)
		if err != nil {
			return fmt.Errorf("create game session: %w", translate(err))
		}
		player, err = store.CreatePlayer(ctx, host)
		if err != nil {
			return fmt.Errorf("create host player: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return sqlcgen.GameSession{}, sqlcgen.Player{}, err
	}
	return created, player, nil
}

// Get fetches a session by room code.
func (r *SessionRepository) Get(ctx context.Context, roomCode string) (sqlcgen.GameSession, error) {
	s, err := r.store.GetGameSession(ctx, roomCode)
	if err != nil {
		return sqlcgen.GameSession{}, translate(err)
	}
	return s, nil
}

// ListPlayers returns the players of a session in join order.
func (r *SessionRepository) ListPlayers(ctx context.Context, roomCode string) ([]sqlcgen.Player, error) {
	return r.store.ListPlayersBySession(ctx, roomCode)
}

// AddPlayerInState locks the session, verifies it is in requiredState and inserts the player.
// An unknown room code yields ErrNotFound.
func (r *SessionRepository) AddPlayerInState(ctx context.Context, params sqlcgen.CreatePlayerParams, requiredState string) (sqlcgen.Player, error) {
	var player sqlcgen.Player
	err := r.inTx(ctx, func(ctx context.Context, store sessionStore) error {
		if err := lockInState(ctx, store, params.RoomCode, requiredState); err != nil {
			return err
		}
		var err error
		player, err = store.CreatePlayer(ctx, params)
		if err != nil {
			return fmt.Errorf("create player: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return sqlcgen.Player{}, err
	}
	return player, nil
}

// GetPlayer fetches a player scoped to its room.
func (r *SessionRepository) GetPlayer(ctx context.Context, roomCode string, playerID uuid.UUID) (sqlcgen.Player, error) {
	p, err := r.store.GetPlayer(ctx, sqlcgen.GetPlayerParams{ID: pgUUID(playerID), RoomCode: roomCode})
	if err != nil {
		return sqlcgen.Player{}, translate(err)
	}
	return p, nil
}

// Transition moves a session from one state to another and returns it with its players,
// read in the same transaction. ErrNotFound means either the room does not exist or it
// was not in the expected state.
func (r *SessionRepository) Transition(ctx context.Context, params sqlcgen.TransitionGameSessionParams) (sqlcgen.GameSession, []sqlcgen.Player, error) {
	var (
		moved   sqlcgen.GameSession
		players []sqlcgen.Player
	)
	err := r.inTx(ctx, func(ctx context.Context, store sessionStore) error {
		var err error
		moved, err = store.TransitionGameSession(ctx, params)
		if err != nil {
			return translate(err)
		}
		players, err = store.ListPlayersBySession(ctx, params.RoomCode)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		return nil
	})
	if err != nil {
		return sqlcgen.GameSession{}, nil, err
	}
	return moved, players, nil
}

// AddScore locks the session, verifies it is in requiredState, records the answer and adds
// its points to the player. A second answer to the same question yields ErrDuplicate.
func (r *SessionRepository) AddScore(ctx context.Context, answer ScoredAnswer, requiredState string) (int32, error) {
	var score int32
	err := r.inTx(ctx, func(ctx context.Context, store sessionStore) error {
		if err := lockInState(ctx, store, answer.RoomCode, requiredState); err != nil {
			return err
		}
		err := store.InsertPlayerAnswer(ctx, sqlcgen.InsertPlayerAnswerParams{
			RoomCode:   answer.RoomCode,
			PlayerID:   pgUUID(answer.PlayerID),
			QuestionID: answer.QuestionID,
			Correct:    answer.Correct,
			Points:     answer.Points,
		})
		if err != nil {
			return fmt.Errorf("record answer: %w", translate(err))
		}
		score, err = store.AddPlayerScore(ctx, sqlcgen.AddPlayerScoreParams{
			Points:   answer.Points,
			ID:       pgUUID(answer.PlayerID),
			RoomCode: answer.RoomCode,
		})
		if err != nil {
			return fmt.Errorf("add player score: %w", translate(err))
		}
		return nil
	})
	return score, err
}

// AdvanceQuestion locks the session, verifies it is in requiredState and bumps the question index.
func (r *SessionRepository) AdvanceQuestion(ctx context.Context, roomCode string, requiredState string) (int32, error) {
	var index int32
	err := r.inTx(ctx, func(ctx context.Context, store sessionStore) error {
		if err := lockInState(ctx, store, roomCode, requiredState); err != nil {
			return err
		}
		var err error
		index, err = store.AdvanceQuestionIndex(ctx, roomCode)
		if err != nil {
			return fmt.Errorf("advance question index: %w", translate(err))
		}
		return nil
	})
	return index, err
}

func lockInState(ctx context.Context, store sessionStore, roomCode, requiredState string) error {
	locked, err := store.GetGameSessionForUpdate(ctx, roomCode)
	if err != nil {
		return fmt.Errorf("lock game session: %w", translate(err))
	}
	if locked.GameState != requiredState {
		return ErrStateMismatch
	}
	return nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
