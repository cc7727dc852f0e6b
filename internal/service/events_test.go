package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventPublisherRedisMirror(t *testing.T) {
	_, client := throttleRedis(t)
	ctx := context.Background()

	publisher := NewEventPublisher(nil, "", client, "contestboard:submissions", testLogger())
	publisher.Publish(ctx, SubmissionEvent{
		Type:         EventSubmissionScored,
		BoardID:      "board-1",
		SubmissionID: "sub-1",
		Rating:       7,
	})

	length, err := client.XLen(ctx, "contestboard:submissions").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), length)
}

func TestEventPublisherNoopWithoutLegs(t *testing.T) {
	publisher := NewEventPublisher(nil, "", nil, "", testLogger())

	// Must not panic with neither transport configured, nor as a nil receiver.
	publisher.Publish(context.Background(), SubmissionEvent{Type: EventBoardDeleted, BoardID: "board-1"})

	var nilPublisher *EventPublisher
	nilPublisher.Publish(context.Background(), SubmissionEvent{Type: EventBoardDeleted})
}
