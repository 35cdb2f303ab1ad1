package session

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRoomCode returns the first four characters of a random UUID, uppercased.
// Codes are not checked for uniqueness; a collision surfaces as ErrRoomCodeTaken on insert.
func GenerateRoomCode() string {
	return strings.ToUpper(uuid.NewString()[:4])
}

// NewGameSession builds a WAITING session with a fresh room code and no players.
func NewGameSession(hostID uuid.UUID) GameSession {
	return GameSession{
		RoomCode: GenerateRoomCode(),
		HostID:   hostID,
		State:    StateWaiting,
		Players:  []Player{},
	}
}

// NormalizeRoomCode trims and uppercases user-typed codes.
func NormalizeRoomCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
