package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// ===== SERVICE MOCKS =====

type MockQuizService struct{ mock.Mock }

func (m *MockQuizService) Create(ctx context.Context, req *services.CreateQuizRequest, creatorID string) (*models.Quiz, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizService) GetByID(ctx context.Context, id uint, userID string) (*services.QuizResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizResponse), args.Error(1)
}

func (m *MockQuizService) List(ctx context.Context, req *services.QuizListRequest, userID string) (*services.QuizListResponse, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizListResponse), args.Error(1)
}

type MockGradingService struct{ mock.Mock }

func (m *MockGradingService) Submit(ctx context.Context, quizID uint, req *services.SubmitAnswersRequest, userID string) (*services.SubmissionResult, error) {
	args := m.Called(ctx, quizID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmissionResult), args.Error(1)
}

func (m *MockGradingService) GetAttempt(ctx context.Context, attemptID uint, userID string) (*models.Attempt, error) {
	args := m.Called(ctx, attemptID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}

func (m *MockGradingService) ListAttempts(ctx context.Context, req *services.AttemptListRequest, userID string) (*services.AttemptListResponse, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AttemptListResponse), args.Error(1)
}

type MockRatingService struct{ mock.Mock }

func (m *MockRatingService) Rate(ctx context.Context, quizID uint, value int, userID string) (*services.RatingStatsResponse, error) {
	args := m.Called(ctx, quizID, value, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RatingStatsResponse), args.Error(1)
}

func (m *MockRatingService) Stats(ctx context.Context, quizID uint, userID string) (*services.RatingStatsResponse, error) {
	args := m.Called(ctx, quizID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RatingStatsResponse), args.Error(1)
}

func (m *MockRatingService) Batch(ctx context.Context, quizIDs []uint) (map[uint]float64, error) {
	args := m.Called(ctx, quizIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

type MockRecommendationService struct{ mock.Mock }

func (m *MockRecommendationService) Recommend(ctx context.Context, userID string) ([]services.QuizSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.QuizSummary), args.Error(1)
}

type MockStatisticsService struct{ mock.Mock }

func (m *MockStatisticsService) Get(ctx context.Context, userID string) (*services.StatisticsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StatisticsResponse), args.Error(1)
}

type MockExportService struct{ mock.Mock }

func (m *MockExportService) ExportStatistics(ctx context.Context, userID string, w io.Writer) error {
	args := m.Called(ctx, userID, w)
	if payload := args.String(0); payload != "" {
		_, _ = io.WriteString(w, payload)
	}
	return args.Error(1)
}

type MockUserDataService struct{ mock.Mock }

func (m *MockUserDataService) DeleteAll(ctx context.Context, userID string) (*services.UserDataDeletionResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserDataDeletionResult), args.Error(1)
}

type mockServiceManager struct {
	quiz           *MockQuizService
	grading        *MockGradingService
	rating         *MockRatingService
	recommendation *MockRecommendationService
	statistics     *MockStatisticsService
	export         *MockExportService
	userData       *MockUserDataService
}

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		quiz:           new(MockQuizService),
		grading:        new(MockGradingService),
		rating:         new(MockRatingService),
		recommendation: new(MockRecommendationService),
		statistics:     new(MockStatisticsService),
		export:         new(MockExportService),
		userData:       new(MockUserDataService),
	}
}

func (m *mockServiceManager) Quiz() services.QuizService                     { return m.quiz }
func (m *mockServiceManager) Grading() services.GradingService               { return m.grading }
func (m *mockServiceManager) Rating() services.RatingService                 { return m.rating }
func (m *mockServiceManager) Recommendation() services.RecommendationService { return m.recommendation }
func (m *mockServiceManager) Statistics() services.StatisticsService         { return m.statistics }
func (m *mockServiceManager) Export() services.ExportService                 { return m.export }
func (m *mockServiceManager) UserData() services.UserDataService             { return m.userData }

// ===== INFRASTRUCTURE FAKES =====

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeTokenParser struct {
	tokens map[string]*casdoorsdk.Claims
}

func (p *fakeTokenParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	claims, ok := p.tokens[token]
	if !ok {
		return nil, errors.New("token signature is invalid")
	}
	return claims, nil
}

type fakeProfileStore struct {
	mock.Mock
}

func (s *fakeProfileStore) Upsert(ctx context.Context, user *models.User) error {
	return s.Called(ctx, user).Error(0)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestRouter wires the real routes over mocked services with header auth
func newTestRouter(sm *mockServiceManager, health Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := testLogger()
	router := NewRouter(logger, nil, false)
	NewHandlerManager(sm, health, logger).SetupRoutes(router, HeaderAuth())
	return router
}
