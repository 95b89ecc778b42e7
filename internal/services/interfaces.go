package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, creatorID string) (*models.Quiz, error)
	GetByID(ctx context.Context, id uint, userID string) (*QuizResponse, error)
	List(ctx context.Context, req *QuizListRequest, userID string) (*QuizListResponse, error)
}

type GradingService interface {
	Submit(ctx context.Context, quizID uint, req *SubmitAnswersRequest, userID string) (*SubmissionResult, error)
	GetAttempt(ctx context.Context, attemptID uint, userID string) (*models.Attempt, error)
	ListAttempts(ctx context.Context, req *AttemptListRequest, userID string) (*AttemptListResponse, error)
}

type RatingService interface {
	Rate(ctx context.Context, quizID uint, value int, userID string) (*RatingStatsResponse, error)
	Stats(ctx context.Context, quizID uint, userID string) (*RatingStatsResponse, error)
	Batch(ctx context.Context, quizIDs []uint) (map[uint]float64, error)
}

type RecommendationService interface {
	Recommend(ctx context.Context, userID string) ([]QuizSummary, error)
}

type StatisticsService interface {
	Get(ctx context.Context, userID string) (*StatisticsResponse, error)
}

type ExportService interface {
	ExportStatistics(ctx context.Context, userID string, w io.Writer) error
}

type UserDataService interface {
	DeleteAll(ctx context.Context, userID string) (*UserDataDeletionResult, error)
}

// ServiceManager hands out every service built over one repository
type ServiceManager interface {
	Quiz() QuizService
	Grading() GradingService
	Rating() RatingService
	Recommendation() RecommendationService
	Statistics() StatisticsService
	Export() ExportService
	UserData() UserDataService
}
