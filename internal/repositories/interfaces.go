package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"gorm.io/gorm"
)

// Repository groups the per-collection repositories behind one handle
type Repository interface {
	Quiz() QuizRepository
	Attempt() AttemptRepository
	Rating() RatingRepository
	Statistics() StatisticsRepository
	User() UserRepository

	Ping(ctx context.Context) error
	Close() error
}

// IsNotFoundError reports whether err means the record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	PublicOnly     bool                    `json:"public_only"`
	CreatedBy      *string                 `json:"created_by"`
	ExcludeCreator *string                 `json:"exclude_creator"`
	ExcludeIDs     []uint                  `json:"exclude_ids"`
	Topics         []string                `json:"topics"`
	Difficulty     *models.DifficultyLevel `json:"difficulty"`
	QuizType       *models.QuizType        `json:"quiz_type"`
	Tag            *string                 `json:"tag"`
	Limit          int                     `json:"limit"`
	Offset         int                     `json:"offset"`
}

type AttemptFilters struct {
	UserID   string     `json:"user_id"`
	QuizID   *uint      `json:"quiz_id"`
	DateFrom *time.Time `json:"date_from"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type RatingStats struct {
	QuizID  uint    `json:"quiz_id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type DeletedCounts struct {
	Quizzes  int64 `json:"quizzes"`
	Attempts int64 `json:"attempts"`
	Ratings  int64 `json:"ratings"`
}
