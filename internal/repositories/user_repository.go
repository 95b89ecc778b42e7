package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// UserRepository interface for user profiles (this service is not the owner of user data)
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)

	// Upsert mirrors the profile carried by the identity provider
	Upsert(ctx context.Context, user *models.User) error
}
