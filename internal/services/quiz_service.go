package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/generation"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/google/uuid"
)

type quizService struct {
	repo       repositories.Repository
	quizzes    *quizReader
	gateway    generation.Gateway
	normalizer generation.Normalizer
	events     DomainEventService
	logger     *ServiceLogger
	validator  *validator.Validator
}

func NewQuizService(
	repo repositories.Repository,
	quizzes *quizReader,
	gateway generation.Gateway,
	normalizer generation.Normalizer,
	eventService DomainEventService,
	logger *ServiceLogger,
	validator *validator.Validator,
) QuizService {
	return &quizService{
		repo:       repo,
		quizzes:    quizzes,
		gateway:    gateway,
		normalizer: normalizer,
		events:     eventService,
		logger:     logger,
		validator:  validator,
	}
}

// Create runs the generation pipeline and persists the quiz only once
// every question has been generated, parsed and validated.
func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, creatorID string) (quiz *models.Quiz, err error) {
	op := s.logger.WithOperation(ctx, "create_quiz", creatorID)
	defer func() {
		var id interface{}
		if quiz != nil {
			id = quiz.ID
		}
		op.LogResult(id, "quiz", err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	req.applyDefaults()

	genReq := generation.Request{
		Topic:      strings.TrimSpace(req.Topic),
		Difficulty: req.Difficulty,
		Count:      req.NumberOfQuestions,
		QuizType:   req.QuizType,
	}
	if req.Description != nil {
		genReq.Description = *req.Description
	}

	questions, err := s.generateQuestions(ctx, genReq)
	if err != nil {
		return nil, err
	}

	quiz = &models.Quiz{
		Topic:       genReq.Topic,
		Description: req.Description,
		QuizType:    req.QuizType,
		Difficulty:  req.Difficulty,
		IsPublic:    req.IsPublic,
		TimeLimit:   req.TimeLimit,
		Questions:   questions,
		Tags:        normalizeTags(req.Tags),
		CreatedBy:   creatorID,
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.events.NotifyQuizCreated(ctx, quiz)
	return quiz, nil
}

func (s *quizService) generateQuestions(ctx context.Context, req generation.Request) ([]models.Question, error) {
	raw, err := s.gateway.Generate(ctx, generation.BuildPrompt(req))
	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			return nil, err
		}
		return nil, &UpstreamError{Stage: "request", Err: err}
	}

	questions, err := s.normalizer.Normalize(raw, req.QuizType)
	if err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, &UpstreamError{Stage: "validate", Err: ErrNoQuestions}
	}
	if err := s.validator.Question().ValidateBatch(questions); err != nil {
		return nil, &UpstreamError{Stage: "validate", Err: fmt.Errorf("%w: %v", ErrInvalidQuestions, err)}
	}

	for i := range questions {
		questions[i].ID = uuid.NewString()
	}
	return questions, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint, userID string) (*QuizResponse, error) {
	quiz, err := s.quizzes.GetVisible(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Rating().StatsByQuiz(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating stats: %w", err)
	}

	return &QuizResponse{
		Quiz:          quiz,
		AverageRating: roundTo2(stats.Average),
		RatingCount:   stats.Count,
	}, nil
}

// List returns the caller's own quizzes when Mine is set, public quizzes otherwise
func (s *quizService) List(ctx context.Context, req *QuizListRequest, userID string) (*QuizListResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	page, size := pageAndSize(req.Page, req.Size)
	filters := repositories.QuizFilters{
		Difficulty: req.Difficulty,
		QuizType:   req.QuizType,
		Limit:      size,
		Offset:     (page - 1) * size,
	}
	if req.Mine {
		filters.CreatedBy = &userID
	} else {
		filters.PublicOnly = true
	}
	if topic := strings.TrimSpace(req.Topic); topic != "" {
		filters.Topics = []string{topic}
	}
	if tag := strings.TrimSpace(req.Tag); tag != "" {
		filters.Tag = &tag
	}

	quizzes, total, err := s.repo.Quiz().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	return &QuizListResponse{
		Quizzes: quizzes,
		Total:   total,
		Page:    page,
		Size:    size,
	}, nil
}

// normalizeTags trims and de-duplicates tags, keeping first occurrence order
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func pageAndSize(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > MaxListPageSize {
		size = MaxListPageSize
	}
	return page, size
}
