package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle stage of a game session.
type State string

const (
	StateWaiting  State = "WAITING"
	StatePlaying  State = "PLAYING"
	StateFinished State = "FINISHED"
)

// PointsPerLevel is multiplied by a question's difficulty to score a correct answer.
const PointsPerLevel = 10

const maxNameLength = 32

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomCodeTaken     = errors.New("room code already in use")
	ErrPlayerNotFound    = errors.New("player not found in room")
	ErrNotHost           = errors.New("only the host can do this")
	ErrNotJoinable       = errors.New("room is not accepting players")
	ErrInvalidTransition = errors.New("invalid game state transition")
	ErrGameNotActive     = errors.New("game is not in progress")
	ErrAlreadyAnswered   = errors.New("question already answered")
)

// GameSession is a multiplayer room and its participants.
type GameSession struct {
	RoomCode             string     `json:"roomCode"`
	HostID               uuid.UUID  `json:"hostId"`
	State                State      `json:"gameState"`
	Players              []Player   `json:"players"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	StartTime            *time.Time `json:"startTime"`
}

// Player belongs to exactly one GameSession.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	RoomCode string    `json:"roomCode"`
	IsHost   bool      `json:"isHost"`
}

// Joined is returned when a player enters a room, host included.
type Joined struct {
	Session GameSession `json:"session"`
	Player  Player      `json:"player"`
	Token   string      `json:"token"`
}

// AnswerSubmission is one player's answer to the current question.
type AnswerSubmission struct {
	QuestionID int64  `json:"questionId"`
	Answer     string `json:"answer"`
	// Difficulty is the level the player is currently at. Zero means the question's own level.
	Difficulty int `json:"difficulty"`
}

// AnswerResult reports the outcome of a submission.
type AnswerResult struct {
	Correct        bool `json:"correct"`
	Points         int  `json:"points"`
	Score          int  `json:"score"`
	NextDifficulty int  `json:"nextDifficulty"`
}

// ValidationError represents a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
