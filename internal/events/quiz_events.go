package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kind of domain event published after a write
type EventType string

const (
	EventQuizCreated      EventType = "quiz.created"
	EventQuizRated        EventType = "quiz.rated"
	EventAttemptSubmitted EventType = "attempt.submitted"
	EventUserDataDeleted  EventType = "user.data_deleted"
)

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by all domain events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	UserID    string                 `json:"user_id"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type QuizCreatedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	Topic         string `json:"topic"`
	QuizType      string `json:"quiz_type"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	IsPublic      bool   `json:"is_public"`
}

type AttemptSubmittedEvent struct {
	AttemptID uint    `json:"attempt_id"`
	QuizID    uint    `json:"quiz_id"`
	Score     int     `json:"score"`
	Total     int     `json:"total"`
	TimeTaken float64 `json:"time_taken"`
}

type QuizRatedEvent struct {
	QuizID uint `json:"quiz_id"`
	Rating int  `json:"rating"`
}

type UserDataDeletedEvent struct {
	QuizzesDeleted  int64 `json:"quizzes_deleted"`
	AttemptsDeleted int64 `json:"attempts_deleted"`
	RatingsDeleted  int64 `json:"ratings_deleted"`
}

// NewEvent wraps a payload in an envelope with a fresh id and timestamp
func NewEvent(eventType EventType, userID string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		UserID:    userID,
		Data:      data,
	}
}
