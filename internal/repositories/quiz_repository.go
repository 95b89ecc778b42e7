package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// QuizRepository interface for quiz document operations
type QuizRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)

	// Query operations, newest first
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)
	ListIDsByCreator(ctx context.Context, userID string) ([]uint, error)

	// Statistics
	CountByCreator(ctx context.Context, userID string, since *time.Time) (int64, error)

	DeleteByCreator(ctx context.Context, userID string) (int64, error)
}
