package postgres

import (
	"encoding/json"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

const maxPageSize = 100

// applyQuizFilters applies the non-pagination filters to a quizzes query
func applyQuizFilters(query *gorm.DB, filters repositories.QuizFilters) *gorm.DB {
	if filters.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.ExcludeCreator != nil {
		query = query.Where("created_by <> ?", *filters.ExcludeCreator)
	}
	if len(filters.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filters.ExcludeIDs)
	}
	if len(filters.Topics) > 0 {
		query = query.Where("topic IN ?", filters.Topics)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.QuizType != nil {
		query = query.Where("quiz_type = ?", *filters.QuizType)
	}
	if filters.Tag != nil {
		tag, _ := json.Marshal([]string{*filters.Tag})
		query = query.Where("tags @> ?::jsonb", string(tag))
	}
	return query
}

// applyPagination orders newest first and bounds the page
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	query = query.Order("created_at DESC").Order("id DESC")
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	query = query.Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
