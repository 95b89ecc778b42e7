package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_Envelope(t *testing.T) {
	event := NewEvent(EventQuizRated, "user-1", QuizRatedEvent{QuizID: 7, Rating: 4})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventQuizRated, event.Type)
	assert.Equal(t, "quiz-service", event.Source)
	assert.Equal(t, "user-1", event.UserID)
	assert.False(t, event.Timestamp.IsZero())

	other := NewEvent(EventQuizRated, "user-1", nil)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, NewEvent(EventQuizCreated, "u", QuizCreatedEvent{QuizID: 1})))
	require.NoError(t, publisher.Publish(ctx, NewEvent(EventAttemptSubmitted, "u", AttemptSubmittedEvent{AttemptID: 2})))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, EventQuizCreated, published[0].Type)
	assert.Equal(t, EventAttemptSubmitted, published[1].Type)

	data, ok := published[1].Data.(AttemptSubmittedEvent)
	require.True(t, ok)
	assert.Equal(t, uint(2), data.AttemptID)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())

	publisher.Err = errors.New("broker down")
	assert.Error(t, publisher.Publish(ctx, NewEvent(EventQuizRated, "u", nil)))
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestMockEventPublisher_Limit(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	publisher.Limit = 2
	ctx := context.Background()

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, publisher.Publish(ctx, NewEvent(EventQuizCreated, "u", QuizCreatedEvent{QuizID: i})))
	}

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, uint(2), published[0].Data.(QuizCreatedEvent).QuizID)
	assert.Equal(t, uint(3), published[1].Data.(QuizCreatedEvent).QuizID)
}
