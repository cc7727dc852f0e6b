package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Submission event types published after a state change is persisted.
const (
	EventSubmissionAccepted = "submission.accepted"
	EventSubmissionScored   = "submission.scored"
	EventSubmissionRejected = "submission.rejected"
	EventBoardDeleted       = "board.deleted"
)

// SubmissionEvent is the wire payload other services consume.
type SubmissionEvent struct {
	Type         string    `json:"type"`
	BoardID      string    `json:"board_id"`
	SubmissionID string    `json:"submission_id,omitempty"`
	OwnerEmail   string    `json:"owner_email,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	Source       string    `json:"source"`
	SentAt       time.Time `json:"sent_at"`
}

// EventPublisher fans submission lifecycle events out over NATS, mirroring
// to a redis stream when one is configured. Both legs are optional; with
// neither configured it is a no-op.
type EventPublisher struct {
	nats        *nats.Conn
	natsSubject string
	redis       *redis.Client
	redisStream string
	nodeID      string
	logger      zerolog.Logger
}

// NewEventPublisher constructs an event publisher.
func NewEventPublisher(natsConn *nats.Conn, subject string, redisClient *redis.Client, stream string, logger zerolog.Logger) *EventPublisher {
	return &EventPublisher{
		nats:        natsConn,
		natsSubject: subject,
		redis:       redisClient,
		redisStream: stream,
		nodeID:      uuid.NewString(),
		logger:      logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Publish sends the event on every configured leg. Delivery is best effort;
// a failed publish is logged, never surfaced to the submitter.
func (p *EventPublisher) Publish(ctx context.Context, event SubmissionEvent) {
	if p == nil {
		return
	}

	event.Source = p.nodeID
	event.SentAt = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to encode submission event")
		return
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			p.logger.Warn().Err(err).Str("type", event.Type).Msg("nats publish failed")
		}
	}

	if p.redis != nil && p.redisStream != "" {
		err := p.redis.XAdd(ctx, &redis.XAddArgs{
			Stream: p.redisStream,
			Values: map[string]interface{}{"event": string(payload)},
		}).Err()
		if err != nil {
			p.logger.Warn().Err(err).Str("type", event.Type).Msg("redis stream publish failed")
		}
	}
}
