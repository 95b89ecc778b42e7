package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainEventService_PublishesEnvelopes(t *testing.T) {
	publisher := events.NewMockEventPublisher(discardLogger())
	service := NewDomainEventService(publisher, discardLogger())
	ctx := context.Background()

	quiz := trueFalseQuiz("ada", true, tfQuestion("q1", "2+2=4", "True"), tfQuestion("q2", "1+1=3", "False"))
	quiz.ID = 7
	service.NotifyQuizCreated(ctx, quiz)
	service.NotifyAttemptSubmitted(ctx, &models.Attempt{ID: 3, QuizID: 7, UserID: "bob", Score: 1, TimeTaken: 42}, 2)
	service.NotifyQuizRated(ctx, "bob", 7, 5)
	service.NotifyUserDataDeleted(ctx, "ada", &UserDataDeletionResult{QuizzesDeleted: 1, AttemptsDeleted: 2})

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 4)

	assert.Equal(t, events.EventQuizCreated, published[0].Type)
	assert.Equal(t, "ada", published[0].UserID)
	assert.Equal(t, events.QuizCreatedEvent{
		QuizID:        7,
		Topic:         "Algebra",
		QuizType:      "true-false",
		Difficulty:    "medium",
		QuestionCount: 2,
		IsPublic:      true,
	}, published[0].Data)

	assert.Equal(t, events.EventAttemptSubmitted, published[1].Type)
	assert.Equal(t, events.AttemptSubmittedEvent{AttemptID: 3, QuizID: 7, Score: 1, Total: 2, TimeTaken: 42}, published[1].Data)

	assert.Equal(t, events.EventQuizRated, published[2].Type)
	assert.Equal(t, events.QuizRatedEvent{QuizID: 7, Rating: 5}, published[2].Data)

	assert.Equal(t, events.EventUserDataDeleted, published[3].Type)
	assert.Equal(t, events.UserDataDeletedEvent{QuizzesDeleted: 1, AttemptsDeleted: 2}, published[3].Data)

	ids := make(map[string]bool)
	for _, event := range published {
		assert.Equal(t, "quiz-service", event.Source)
		assert.False(t, event.Timestamp.IsZero())
		ids[event.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestDomainEventService_PublishFailureIsSwallowed(t *testing.T) {
	publisher := events.NewMockEventPublisher(discardLogger())
	publisher.Err = errors.New("broker unavailable")
	service := NewDomainEventService(publisher, discardLogger())

	assert.NotPanics(t, func() {
		service.NotifyQuizRated(context.Background(), "bob", 7, 5)
	})
	assert.Empty(t, publisher.GetPublishedEvents())
}
