package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"golang.org/x/sync/errgroup"
)

type userDataService struct {
	repo    repositories.Repository
	quizzes *quizReader
	events  DomainEventService
	logger  *ServiceLogger
}

func NewUserDataService(repo repositories.Repository, quizzes *quizReader, eventService DomainEventService, logger *ServiceLogger) UserDataService {
	return &userDataService{
		repo:    repo,
		quizzes: quizzes,
		events:  eventService,
		logger:  logger,
	}
}

// DeleteAll removes everything the user owns. The caller's attempts, ratings
// and snapshot are disjoint and go concurrently; the quizzes go afterwards
// together with other users' ratings of them. Other users' attempts on
// those quizzes are kept so their history and statistics stay intact.
func (s *userDataService) DeleteAll(ctx context.Context, userID string) (result *UserDataDeletionResult, err error) {
	op := s.logger.WithOperation(ctx, "delete_user_data", userID)
	defer func() { op.LogResult(nil, "user_data", err) }()

	quizIDs, err := s.repo.Quiz().ListIDsByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user quizzes: %w", err)
	}

	result = &UserDataDeletionResult{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Attempt().DeleteByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete attempts: %w", err)
		}
		result.AttemptsDeleted = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.Rating().DeleteByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete ratings: %w", err)
		}
		result.RatingsDeleted = n
		return nil
	})
	g.Go(func() error {
		if err := s.repo.Statistics().DeleteByUser(gctx, userID); err != nil {
			return fmt.Errorf("failed to delete statistics: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	received, err := s.repo.Rating().DeleteByQuizIDs(ctx, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to delete ratings of user quizzes: %w", err)
	}
	result.RatingsDeleted += received

	result.QuizzesDeleted, err = s.repo.Quiz().DeleteByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete quizzes: %w", err)
	}

	s.quizzes.Invalidate(ctx, quizIDs)
	s.events.NotifyUserDataDeleted(ctx, userID, result)
	return result, nil
}
