package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingPostgreSQL struct {
	db *gorm.DB
}

func NewRatingPostgreSQL(db *gorm.DB) repositories.RatingRepository {
	return &RatingPostgreSQL{db: db}
}

// Upsert relies on the (user_id, quiz_id) unique index so concurrent
// re-ratings collapse into one row holding the last written value.
func (r *RatingPostgreSQL) Upsert(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
}

func (r *RatingPostgreSQL) GetByUserAndQuiz(ctx context.Context, userID string, quizID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingPostgreSQL) StatsByQuiz(ctx context.Context, quizID uint) (*repositories.RatingStats, error) {
	stats := repositories.RatingStats{QuizID: quizID}
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS count").
		Where("quiz_id = ?", quizID).
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *RatingPostgreSQL) StatsByQuizIDs(ctx context.Context, quizIDs []uint) (map[uint]repositories.RatingStats, error) {
	result := make(map[uint]repositories.RatingStats, len(quizIDs))
	if len(quizIDs) == 0 {
		return result, nil
	}

	var rows []repositories.RatingStats
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("quiz_id, AVG(value) AS average, COUNT(*) AS count").
		Where("quiz_id IN ?", quizIDs).
		Group("quiz_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.QuizID] = row
	}
	return result, nil
}

func (r *RatingPostgreSQL) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Rating{})
	return result.RowsAffected, result.Error
}

func (r *RatingPostgreSQL) DeleteByQuizIDs(ctx context.Context, quizIDs []uint) (int64, error) {
	if len(quizIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("quiz_id IN ?", quizIDs).Delete(&models.Rating{})
	return result.RowsAffected, result.Error
}
