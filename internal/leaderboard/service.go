package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrInvalidEntry is returned by RecordRoom for entries without a player or with a negative score.
var ErrInvalidEntry = errors.New("invalid leaderboard entry")

// Entry is one player's score as shown on a board.
type Entry struct {
	Rank     int       `json:"rank"`
	PlayerID uuid.UUID `json:"playerId"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
}

// ServiceOptions configures leaderboard service behavior.
type ServiceOptions struct {
	TopN           int
	RedisKeyPrefix string
	RoomTTL        time.Duration
}

// Service keeps the all-time high score board and per-room boards in Redis sorted sets.
type Service struct {
	redis   redis.Cmdable
	logger  zerolog.Logger
	topN    int
	prefix  string
	roomTTL time.Duration
}

// NewService constructs a leaderboard service instance.
func NewService(rdb redis.Cmdable, logger zerolog.Logger, opts ServiceOptions) *Service {
	topN := opts.TopN
	if topN <= 0 {
		topN = 50
	}
	prefix := opts.RedisKeyPrefix
	if prefix == "" {
		prefix = "lb"
	}
	roomTTL := opts.RoomTTL
	if roomTTL <= 0 {
		roomTTL = 7 * 24 * time.Hour
	}

	return &Service{
		redis:   rdb,
		logger:  logger.With().Str("component", "leaderboard").Logger(),
		topN:    topN,
		prefix:  prefix,
		roomTTL: roomTTL,
	}
}

// RecordRoom stores the final scores of a finished room on its own board and offers
// each of them to the high score board, which keeps only a player's best score.
func (s *Service) RecordRoom(ctx context.Context, roomCode string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	roomKey := s.roomKey(roomCode)
	pipe := s.redis.TxPipeline()
	for _, e := range entries {
		if e.PlayerID == uuid.Nil || e.Score < 0 {
			return ErrInvalidEntry
		}
		member := e.PlayerID.String()
		pipe.ZAdd(ctx, roomKey, redis.Z{Score: float64(e.Score), Member: member})
		pipe.ZAddGT(ctx, s.highKey(), redis.Z{Score: float64(e.Score), Member: member})
		pipe.HSet(ctx, s.namesKey(), member, e.Name)
	}
	pipe.Expire(ctx, roomKey, s.roomTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record room %s scores: %w", roomCode, err)
	}
	s.logger.Debug().Str("room_code", roomCode).Int("players", len(entries)).Msg("room scores recorded")
	return nil
}

// Top returns the best scores, highest first. Limits outside (0, TopN] fall back to TopN.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	return s.top(ctx, s.highKey(), limit)
}

// RoomTop returns a finished room's scores, highest first.
func (s *Service) RoomTop(ctx context.Context, roomCode string, limit int) ([]Entry, error) {
	return s.top(ctx, s.roomKey(roomCode), limit)
}

func (s *Service) top(ctx context.Context, key string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.topN {
		limit = s.topN
	}

	results, err := s.redis.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	if len(results) == 0 {
		return []Entry{}, nil
	}

	members := make([]string, len(results))
	for i, z := range results {
		members[i] = z.Member.(string)
	}
	names, err := s.redis.HMGet(ctx, s.namesKey(), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard names: %w", err)
	}

	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		id, err := uuid.Parse(members[i])
		if err != nil {
			s.logger.Warn().Err(err).Str("member", members[i]).Msg("skipping malformed leaderboard member")
			continue
		}
		name, _ := names[i].(string)
		entries = append(entries, Entry{
			Rank:     len(entries) + 1,
			PlayerID: id,
			Name:     name,
			Score:    int(z.Score),
		})
	}
	return entries, nil
}

func (s *Service) highKey() string {
	return fmt.Sprintf("%s:high", s.prefix)
}

func (s *Service) namesKey() string {
	return fmt.Sprintf("%s:names", s.prefix)
}

func (s *Service) roomKey(roomCode string) string {
	return fmt.Sprintf("%s:room:%s", s.prefix, roomCode)
}
