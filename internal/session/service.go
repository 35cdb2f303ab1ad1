package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/heist-trivia/internal/auth/jwt"
	"github.com/gokatarajesh/heist-trivia/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
	"github.com/gokatarajesh/heist-trivia/internal/leaderboard"
	"github.com/gokatarajesh/heist-trivia/internal/metrics"
	"github.com/gokatarajesh/heist-trivia/internal/question"
)

// Store is the persistence capability the service needs.
// Implemented by repository.SessionRepository.
type Store interface {
	CreateWithHost(ctx context.Context, session sqlcgen.CreateGameSessionParams, host sqlcgen.CreatePlayerParams) (sqlcgen.GameSession, sqlcgen.Player, error)
	Get(ctx context.Context, roomCode string) (sqlcgen.GameSession, error)
	ListPlayers(ctx context.Context, roomCode string) ([]sqlcgen.Player, error)
	AddPlayerInState(ctx context.Context, params sqlcgen.CreatePlayerParams, requiredState string) (sqlcgen.Player, error)
	GetPlayer(ctx context.Context, roomCode string, playerID uuid.UUID) (sqlcgen.Player, error)
	Transition(ctx context.Context, params sqlcgen.TransitionGameSessionParams) (sqlcgen.GameSession, []sqlcgen.Player, error)
	AddScore(ctx context.Context, answer repository.ScoredAnswer, requiredState string) (int32, error)
	AdvanceQuestion(ctx context.Context, roomCode string, requiredState string) (int32, error)
}

// AnswerChecker is satisfied by *question.Service.
type AnswerChecker interface {
	Evaluate(ctx context.Context, questionID int64, answer string) (question.Evaluation, error)
}

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	Issue(p jwt.Player) (string, error)
}

// ScoreRecorder is satisfied by *leaderboard.Service.
type ScoreRecorder interface {
	RecordRoom(ctx context.Context, roomCode string, entries []leaderboard.Entry) error
}

type ServiceOptions struct {
	Metrics *metrics.Metrics
	// Scores receives final scores when a game finishes. Optional.
	Scores ScoreRecorder
}

// Service runs the room lifecycle: create, join, start, answer, advance, finish.
type Service struct {
	store   Store
	checker AnswerChecker
	tokens  TokenIssuer
	scores  ScoreRecorder
	metrics *metrics.Metrics
	logger  zerolog.Logger

	now func() time.Time
}

func NewService(store Store, checker AnswerChecker, tokens TokenIssuer, logger zerolog.Logger, opts ServiceOptions) *Service {
	return &Service{
		store:   store,
		checker: checker,
		tokens:  tokens,
		scores:  opts.Scores,
		metrics: opts.Metrics,
		logger:  logger.With().Str("component", "session").Logger(),
		now:     time.Now,
	}
}

// Create opens a WAITING room with the caller as host.
func (s *Service) Create(ctx context.Context, hostName string) (*Joined, error) {
	name, err := validateName(hostName)
	if err != nil {
		return nil, err
	}

	gs := NewGameSession(uuid.New())

	row, hostRow, err := s.store.CreateWithHost(ctx,
		sqlcgen.CreateGameSessionParams{
			RoomCode:  gs.RoomCode,
			HostID:    pgUUID(gs.HostID),
			GameState: string(gs.State),
		},
		sqlcgen.CreatePlayerParams{
			ID:       pgUUID(gs.HostID),
			Name:     name,
			RoomCode: gs.RoomCode,
			IsHost:   true,
		},
	)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Warn().Str("room_code", gs.RoomCode).Msg("room code collision")
			return nil, fmt.Errorf("room %s: %w", gs.RoomCode, ErrRoomCodeTaken)
		}
		return nil, fmt.Errorf("create room: %w", err)
	}

	host := toPlayer(hostRow)
	created := toSession(row, []sqlcgen.Player{hostRow})
	token, err := s.issue(host)
	if err != nil {
		return nil, err
	}

	s.metrics.SessionCreated()
	s.metrics.PlayerJoined()
	s.logger.Info().Str("room_code", created.RoomCode).Str("host_id", host.ID.String()).Msg("room created")
	return &Joined{Session: created, Player: host, Token: token}, nil
}

// Join adds a player to a WAITING room.
func (s *Service) Join(ctx context.Context, roomCode, playerName string) (*Joined, error) {
	name, err := validateName(playerName)
	if err != nil {
		return nil, err
	}

	playerRow, err := s.store.AddPlayerInState(ctx, sqlcgen.CreatePlayerParams{
		ID:       pgUUID(uuid.New()),
		Name:     name,
		RoomCode: roomCode,
	}, string(StateWaiting))
	if err != nil {
		if errors.Is(err, repository.ErrStateMismatch) {
			return nil, fmt.Errorf("room %s: %w", roomCode, ErrNotJoinable)
		}
		return nil, s.roomErr(roomCode, err)
	}

	player := toPlayer(playerRow)
	token, err := s.issue(player)
	if err != nil {
		return nil, err
	}

	gs, err := s.Get(ctx, roomCode)
	if err != nil {
		return nil, err
	}

	s.metrics.PlayerJoined()
	s.logger.Info().Str("room_code", roomCode).Str("player_id", player.ID.String()).Msg("player joined")
	return &Joined{Session: *gs, Player: player, Token: token}, nil
}

// Get loads a room with its players in join order.
func (s *Service) Get(ctx context.Context, roomCode string) (*GameSession, error) {
	row, err := s.store.Get(ctx, roomCode)
	if err != nil {
		return nil, s.roomErr(roomCode, err)
	}
	players, err := s.store.ListPlayers(ctx, roomCode)
	if err != nil {
		return nil, fmt.Errorf("list players of %s: %w", roomCode, err)
	}
	gs := toSession(row, players)
	return &gs, nil
}

// Start moves a room from WAITING to PLAYING and stamps its start time. Host only.
func (s *Service) Start(ctx context.Context, roomCode string, playerID uuid.UUID) (*GameSession, error) {
	if err := s.requireHost(ctx, roomCode, playerID); err != nil {
		return nil, err
	}
	gs, err := s.transition(ctx, roomCode, StateWaiting, StatePlaying, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("room_code", roomCode).Msg("game started")
	return gs, nil
}

// Finish moves a room from PLAYING to FINISHED and hands final scores to the leaderboard.
// Host only. A leaderboard failure is logged and does not undo the transition.
func (s *Service) Finish(ctx context.Context, roomCode string, playerID uuid.UUID) (*GameSession, error) {
	if err := s.requireHost(ctx, roomCode, playerID); err != nil {
		return nil, err
	}
	gs, err := s.transition(ctx, roomCode, StatePlaying, StateFinished, time.Time{})
	if err != nil {
		return nil, err
	}

	if s.scores != nil {
		entries := make([]leaderboard.Entry, 0, len(gs.Players))
		for _, p := range gs.Players {
			entries = append(entries, leaderboard.Entry{PlayerID: p.ID, Name: p.Name, Score: p.Score})
		}
		if err := s.scores.RecordRoom(ctx, roomCode, entries); err != nil {
			s.logger.Error().Err(err).Str("room_code", roomCode).Msg("failed to record final scores")
		}
	}

	s.logger.Info().Str("room_code", roomCode).Int("players", len(gs.Players)).Msg("game finished")
	return gs, nil
}

// SubmitAnswer checks an answer and credits PointsPerLevel times the question's
// difficulty when correct. Each player answers a question at most once per room, and
// only while the room is PLAYING.
func (s *Service) SubmitAnswer(ctx context.Context, roomCode string, playerID uuid.UUID, sub AnswerSubmission) (*AnswerResult, error) {
	if _, err := s.player(ctx, roomCode, playerID); err != nil {
		return nil, err
	}

	eval, err := s.checker.Evaluate(ctx, sub.QuestionID, sub.Answer)
	if err != nil {
		return nil, fmt.Errorf("check answer: %w", err)
	}

	points := 0
	if eval.Correct {
		points = PointsPerLevel * eval.DifficultyLevel
	}

	score, err := s.store.AddScore(ctx, repository.ScoredAnswer{
		RoomCode:   roomCode,
		PlayerID:   playerID,
		QuestionID: eval.QuestionID,
		Correct:    eval.Correct,
		Points:     int32(points),
	}, string(StatePlaying))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStateMismatch):
			return nil, fmt.Errorf("room %s: %w", roomCode, ErrGameNotActive)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("question %d: %w", sub.QuestionID, ErrAlreadyAnswered)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("room %s: %w", roomCode, ErrPlayerNotFound)
		}
		return nil, fmt.Errorf("add score: %w", err)
	}

	current := sub.Difficulty
	if current == 0 {
		current = eval.DifficultyLevel
	}

	s.logger.Debug().
		Str("room_code", roomCode).
		Str("player_id", playerID.String()).
		Int64("question_id", sub.QuestionID).
		Bool("correct", eval.Correct).
		Msg("answer submitted")

	return &AnswerResult{
		Correct:        eval.Correct,
		Points:         points,
		Score:          int(score),
		NextDifficulty: question.AdjustDifficulty(current, eval.Correct),
	}, nil
}

// Advance moves a PLAYING room to its next question and returns the new index. Host only.
func (s *Service) Advance(ctx context.Context, roomCode string, playerID uuid.UUID) (int, error) {
	if err := s.requireHost(ctx, roomCode, playerID); err != nil {
		return 0, err
	}
	index, err := s.store.AdvanceQuestion(ctx, roomCode, string(StatePlaying))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStateMismatch):
			return 0, fmt.Errorf("room %s: %w", roomCode, ErrGameNotActive)
		case errors.Is(err, repository.ErrNotFound):
			return 0, fmt.Errorf("room %s: %w", roomCode, ErrRoomNotFound)
		}
		return 0, fmt.Errorf("advance question: %w", err)
	}
	return int(index), nil
}

func (s *Service) transition(ctx context.Context, roomCode string, from, to State, startedAt time.Time) (*GameSession, error) {
	params := sqlcgen.TransitionGameSessionParams{
		ToState:   string(to),
		RoomCode:  roomCode,
		FromState: string(from),
	}
	if !startedAt.IsZero() {
		params.StartTime = pgtype.Timestamptz{Time: startedAt, Valid: true}
	}

	row, players, err := s.store.Transition(ctx, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("room %s %s->%s: %w", roomCode, from, to, ErrInvalidTransition)
		}
		return nil, fmt.Errorf("transition room %s: %w", roomCode, err)
	}
	gs := toSession(row, players)
	return &gs, nil
}

func (s *Service) requireHost(ctx context.Context, roomCode string, playerID uuid.UUID) error {
	p, err := s.player(ctx, roomCode, playerID)
	if err != nil {
		return err
	}
	if !p.IsHost {
		return ErrNotHost
	}
	return nil
}

func (s *Service) player(ctx context.Context, roomCode string, playerID uuid.UUID) (sqlcgen.Player, error) {
	p, err := s.store.GetPlayer(ctx, roomCode, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return sqlcgen.Player{}, fmt.Errorf("player %s in %s: %w", playerID, roomCode, ErrPlayerNotFound)
		}
		return sqlcgen.Player{}, fmt.Errorf("load player: %w", err)
	}
	return p, nil
}

func (s *Service) issue(p Player) (string, error) {
	token, err := s.tokens.Issue(jwt.Player{ID: p.ID, RoomCode: p.RoomCode, IsHost: p.IsHost})
	if err != nil {
		return "", fmt.Errorf("issue player token: %w", err)
	}
	return token, nil
}

func (s *Service) roomErr(roomCode string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("room %s: %w", roomCode, ErrRoomNotFound)
	}
	return fmt.Errorf("room %s: %w", roomCode, err)
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", &ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", maxNameLength)}
	}
	return name, nil
}

func toSession(row sqlcgen.GameSession, players []sqlcgen.Player) GameSession {
	gs := GameSession{
		RoomCode:             row.RoomCode,
		HostID:               uuid.UUID(row.HostID.Bytes),
		State:                State(row.GameState),
		Players:              make([]Player, 0, len(players)),
		CurrentQuestionIndex: int(row.CurrentQuestionIndex),
	}
	if row.StartTime.Valid {
		t := row.StartTime.Time
		gs.StartTime = &t
	}
	for _, p := range players {
		gs.Players = append(gs.Players, toPlayer(p))
	}
	return gs
}

func toPlayer(row sqlcgen.Player) Player {
	return Player{
		ID:       uuid.UUID(row.ID.Bytes),
		Name:     row.Name,
		Score:    int(row.Score),
		RoomCode: row.RoomCode,
		IsHost:   row.IsHost,
	}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
