package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// RatingRepository interface for per (user, quiz) ratings
type RatingRepository interface {
	// Upsert inserts or overwrites the rating for (user, quiz) atomically
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByUserAndQuiz(ctx context.Context, userID string, quizID uint) (*models.Rating, error)

	StatsByQuiz(ctx context.Context, quizID uint) (*RatingStats, error)
	// StatsByQuizIDs aggregates all requested quizzes in a single grouped query
	StatsByQuizIDs(ctx context.Context, quizIDs []uint) (map[uint]RatingStats, error)

	DeleteByUser(ctx context.Context, userID string) (int64, error)
	// DeleteByQuizIDs removes every user's ratings of the given quizzes
	DeleteByQuizIDs(ctx context.Context, quizIDs []uint) (int64, error)
}

// StatisticsRepository stores the per-user statistics snapshot
type StatisticsRepository interface {
	Upsert(ctx context.Context, stats *models.Statistics) error
	DeleteByUser(ctx context.Context, userID string) error
}
