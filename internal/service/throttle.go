package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AttemptThrottle enforces a minimum interval between submission attempts by
// the same user on the same board, regardless of quota, so a double-click or
// an impatient retry cannot hammer the judge. This is a last-attempt
// timestamp check, not a queueing rate limiter.
type AttemptThrottle struct {
	redis    *redis.Client
	cooldown time.Duration
	logger   zerolog.Logger
}

// NewAttemptThrottle constructs a throttle. A nil redis client disables
// throttling entirely.
func NewAttemptThrottle(redisClient *redis.Client, cooldown time.Duration, logger zerolog.Logger) *AttemptThrottle {
	if cooldown <= 0 {
		cooldown = 5 * time.Second
	}

	return &AttemptThrottle{
		redis:    redisClient,
		cooldown: cooldown,
		logger:   logger.With().Str("component", "attempt_throttle").Logger(),
	}
}

// Allow records the attempt and reports whether it falls outside the
// cooldown window of the previous one. Redis errors fail open: governance
// must not depend on the throttle's availability.
func (t *AttemptThrottle) Allow(ctx context.Context, boardID, ownerEmail string) bool {
	if t.redis == nil {
		return true
	}

	key := fmt.Sprintf("contestboard:attempt:%s:%s", boardID, ownerEmail)
	set, err := t.redis.SetNX(ctx, key, time.Now().Unix(), t.cooldown).Result()
	if err != nil {
		t.logger.Warn().Err(err).Msg("throttle check failed, allowing attempt")
		return true
	}

	return set
}
