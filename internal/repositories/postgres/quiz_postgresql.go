package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Create(quiz).Error
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q *QuizPostgreSQL) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	var quizzes []*models.Quiz
	var total int64

	// apply filter first
	query := q.db.WithContext(ctx).Model(&models.Quiz{})
	query = applyQuizFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then pagination and sorting
	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}

	return quizzes, total, nil
}

func (q *QuizPostgreSQL) ListIDsByCreator(ctx context.Context, userID string) ([]uint, error) {
	var ids []uint
	if err := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("created_by = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (q *QuizPostgreSQL) CountByCreator(ctx context.Context, userID string, since *time.Time) (int64, error) {
	var count int64
	query := q.db.WithContext(ctx).Model(&models.Quiz{}).Where("created_by = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByCreator removes the user's quizzes; attempts on them are kept
func (q *QuizPostgreSQL) DeleteByCreator(ctx context.Context, userID string) (int64, error) {
	result := q.db.WithContext(ctx).Where("created_by = ?", userID).Delete(&models.Quiz{})
	return result.RowsAffected, result.Error
}
