package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

type gradingService struct {
	repo      repositories.Repository
	quizzes   *quizReader
	events    DomainEventService
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewGradingService(
	repo repositories.Repository,
	quizzes *quizReader,
	eventService DomainEventService,
	logger *ServiceLogger,
	validator *validator.Validator,
) GradingService {
	return &gradingService{
		repo:      repo,
		quizzes:   quizzes,
		events:    eventService,
		logger:    logger,
		validator: validator,
	}
}

// Submit grades the answers against the stored quiz and records one attempt.
// Answers naming an unknown question are skipped.
func (s *gradingService) Submit(ctx context.Context, quizID uint, req *SubmitAnswersRequest, userID string) (result *SubmissionResult, err error) {
	op := s.logger.WithOperation(ctx, "submit_attempt", userID)
	defer func() {
		var id interface{}
		if result != nil {
			id = result.AttemptID
		}
		op.LogResult(id, "attempt", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.quizzes.GetVisible(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	graded, score := GradeAnswers(quiz, req.Answers)

	attempt := &models.Attempt{
		UserID:    userID,
		QuizID:    quiz.ID,
		Answers:   graded,
		Score:     score,
		TimeTaken: CoerceElapsed(req.TimeTaken),
	}
	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	total := len(quiz.Questions)
	s.events.NotifyAttemptSubmitted(ctx, attempt, total)

	return &SubmissionResult{
		Score:     score,
		Total:     total,
		Result:    graded,
		AttemptID: attempt.ID,
	}, nil
}

func (s *gradingService) GetAttempt(ctx context.Context, attemptID uint, userID string) (*models.Attempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptAccessDenied
	}
	return attempt, nil
}

func (s *gradingService) ListAttempts(ctx context.Context, req *AttemptListRequest, userID string) (*AttemptListResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	page, size := pageAndSize(req.Page, req.Size)
	attempts, total, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{
		UserID: userID,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return &AttemptListResponse{
		Attempts: attempts,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

// GradeAnswers compares each submitted answer with the question's correct
// answer using exact, case-sensitive equality. Only the first answer per
// question counts, so score never exceeds the question count.
func GradeAnswers(quiz *models.Quiz, answers []SubmittedAnswer) ([]models.GradedAnswer, int) {
	graded := make([]models.GradedAnswer, 0, len(answers))
	seen := make(map[string]bool, len(answers))
	score := 0

	for _, answer := range answers {
		question, ok := quiz.FindQuestion(answer.QuestionID)
		if !ok || seen[question.ID] {
			continue
		}
		seen[question.ID] = true

		correct := answer.SelectedAnswer == question.CorrectAnswer
		if correct {
			score++
		}
		graded = append(graded, models.GradedAnswer{
			QuestionID:     question.ID,
			SelectedAnswer: answer.SelectedAnswer,
			IsCorrect:      correct,
			CorrectAnswer:  question.CorrectAnswer,
			Explanation:    question.Explanation,
		})
	}

	return graded, score
}

// CoerceElapsed accepts a finite, non-negative number (or numeric string)
// and maps everything else to 0.
func CoerceElapsed(value interface{}) float64 {
	var seconds float64
	switch v := value.(type) {
	case float64:
		seconds = v
	case float32:
		seconds = float64(v)
	case int:
		seconds = float64(v)
	case int64:
		seconds = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		seconds = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		seconds = f
	default:
		return 0
	}

	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	return seconds
}
