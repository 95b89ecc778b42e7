package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// AttemptRepository interface for quiz attempt operations
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id uint) (*models.Attempt, error)

	// List returns a page of attempts newest first plus the total count
	List(ctx context.Context, filters AttemptFilters) ([]*models.Attempt, int64, error)

	// ListByUser returns the full history oldest first with the quiz preloaded
	ListByUser(ctx context.Context, userID string) ([]*models.Attempt, error)

	CountByUser(ctx context.Context, userID string, since *time.Time) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
