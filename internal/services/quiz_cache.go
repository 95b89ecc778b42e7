package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

// quizReader loads quizzes through the read-through cache. Quizzes do not
// change after creation so entries only leave the cache on expiry or
// when their owner deletes their data.
type quizReader struct {
	repo   repositories.QuizRepository
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func newQuizReader(repo repositories.QuizRepository, cacheService cache.CacheService, ttl time.Duration, logger *slog.Logger) *quizReader {
	return &quizReader{
		repo:   repo,
		cache:  cacheService,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *quizReader) Get(ctx context.Context, id uint) (*models.Quiz, error) {
	key := cache.QuizKey(id)

	var cached models.Quiz
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Quiz cache read failed, falling back to store", "quiz_id", id, "error", err)
	}

	quiz, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := r.cache.Set(ctx, key, quiz, r.ttl); err != nil {
		r.logger.Warn("Quiz cache write failed", "quiz_id", id, "error", err)
	}
	return quiz, nil
}

// GetVisible is Get restricted to quizzes the user may open: public ones and
// their own. A private quiz reads as not found to everyone else.
func (r *quizReader) GetVisible(ctx context.Context, id uint, userID string) (*models.Quiz, error) {
	quiz, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublic && quiz.CreatedBy != userID {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (r *quizReader) Invalidate(ctx context.Context, ids []uint) {
	for _, id := range ids {
		if err := r.cache.Delete(ctx, cache.QuizKey(id)); err != nil {
			r.logger.Warn("Quiz cache invalidation failed", "quiz_id", id, "error", err)
		}
	}
}
