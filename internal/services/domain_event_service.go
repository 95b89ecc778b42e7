package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// DomainEventService publishes an event after each committed write.
// Publishing is best-effort: failures are logged, never returned.
type DomainEventService interface {
	NotifyQuizCreated(ctx context.Context, quiz *models.Quiz)
	NotifyAttemptSubmitted(ctx context.Context, attempt *models.Attempt, total int)
	NotifyQuizRated(ctx context.Context, userID string, quizID uint, value int)
	NotifyUserDataDeleted(ctx context.Context, userID string, result *UserDataDeletionResult)
}

type domainEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewDomainEventService(eventPublisher events.EventPublisher, logger *slog.Logger) DomainEventService {
	return &domainEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *domainEventService) NotifyQuizCreated(ctx context.Context, quiz *models.Quiz) {
	s.publish(ctx, events.NewEvent(events.EventQuizCreated, quiz.CreatedBy, events.QuizCreatedEvent{
		QuizID:        quiz.ID,
		Topic:         quiz.Topic,
		QuizType:      string(quiz.QuizType),
		Difficulty:    string(quiz.Difficulty),
		QuestionCount: len(quiz.Questions),
		IsPublic:      quiz.IsPublic,
	}))
}

func (s *domainEventService) NotifyAttemptSubmitted(ctx context.Context, attempt *models.Attempt, total int) {
	s.publish(ctx, events.NewEvent(events.EventAttemptSubmitted, attempt.UserID, events.AttemptSubmittedEvent{
		AttemptID: attempt.ID,
		QuizID:    attempt.QuizID,
		Score:     attempt.Score,
		Total:     total,
		TimeTaken: attempt.TimeTaken,
	}))
}

func (s *domainEventService) NotifyQuizRated(ctx context.Context, userID string, quizID uint, value int) {
	s.publish(ctx, events.NewEvent(events.EventQuizRated, userID, events.QuizRatedEvent{
		QuizID: quizID,
		Rating: value,
	}))
}

func (s *domainEventService) NotifyUserDataDeleted(ctx context.Context, userID string, result *UserDataDeletionResult) {
	s.publish(ctx, events.NewEvent(events.EventUserDataDeleted, userID, events.UserDataDeletedEvent{
		QuizzesDeleted:  result.QuizzesDeleted,
		AttemptsDeleted: result.AttemptsDeleted,
		RatingsDeleted:  result.RatingsDeleted,
	}))
}

func (s *domainEventService) publish(ctx context.Context, event *events.Event) {
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish domain event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
	}
}
