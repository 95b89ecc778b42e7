package services

import (
	"context"
	"fmt"
	"math"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

type ratingService struct {
	repo      repositories.Repository
	quizzes   *quizReader
	events    DomainEventService
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewRatingService(
	repo repositories.Repository,
	quizzes *quizReader,
	eventService DomainEventService,
	logger *ServiceLogger,
	validator *validator.Validator,
) RatingService {
	return &ratingService{
		repo:      repo,
		quizzes:   quizzes,
		events:    eventService,
		logger:    logger,
		validator: validator,
	}
}

// Rate stores the caller's rating, overwriting any earlier one.
// Creators cannot rate their own quiz and private quizzes cannot be rated.
func (s *ratingService) Rate(ctx context.Context, quizID uint, value int, userID string) (resp *RatingStatsResponse, err error) {
	op := s.logger.WithOperation(ctx, "rate_quiz", userID)
	defer func() { op.LogResult(quizID, "rating", err) }()

	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}

	// policy checks come first so they apply whatever the value
	if quiz.CreatedBy == userID {
		return nil, NewConflictError("self_rating", ErrCannotRateOwnQuiz, map[string]interface{}{"quiz_id": quizID})
	}
	if !quiz.IsPublic {
		return nil, NewConflictError("non_public_quiz", ErrQuizNotPublic, map[string]interface{}{"quiz_id": quizID})
	}

	if err := s.validator.Validate(&RateQuizRequest{Rating: value}); err != nil {
		return nil, err
	}

	if err := s.repo.Rating().Upsert(ctx, &models.Rating{
		UserID: userID,
		QuizID: quizID,
		Value:  value,
	}); err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	s.events.NotifyQuizRated(ctx, userID, quizID, value)

	return s.Stats(ctx, quizID, userID)
}

func (s *ratingService) Stats(ctx context.Context, quizID uint, userID string) (*RatingStatsResponse, error) {
	if _, err := s.quizzes.Get(ctx, quizID); err != nil {
		return nil, err
	}

	stats, err := s.repo.Rating().StatsByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating stats: %w", err)
	}

	resp := &RatingStatsResponse{
		Average: roundTo2(stats.Average),
		Count:   stats.Count,
	}

	if userID != "" {
		own, err := s.repo.Rating().GetByUserAndQuiz(ctx, userID, quizID)
		switch {
		case err == nil:
			resp.UserRating = &own.Value
		case !repositories.IsNotFoundError(err):
			return nil, fmt.Errorf("failed to get user rating: %w", err)
		}
	}

	return resp, nil
}

// Batch maps every requested id to its average; ids without ratings map to 0
func (s *ratingService) Batch(ctx context.Context, quizIDs []uint) (map[uint]float64, error) {
	if err := s.validator.Validate(&BatchRatingsRequest{QuizIDs: quizIDs}); err != nil {
		return nil, err
	}

	stats, err := s.repo.Rating().StatsByQuizIDs(ctx, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch ratings: %w", err)
	}

	result := make(map[uint]float64, len(quizIDs))
	for _, id := range quizIDs {
		result[id] = roundTo2(stats[id].Average)
	}
	return result, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
