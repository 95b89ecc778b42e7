package services

import (
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// ===== QUIZ =====

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
	MaxListPageSize      = 50
)

type CreateQuizRequest struct {
	Topic             string                 `json:"topic" validate:"required,notblank,max=200"`
	Description       *string                `json:"description" validate:"omitempty,max=1000"`
	Difficulty        models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
	NumberOfQuestions int                    `json:"numberOfQuestions" validate:"omitempty,min=1,max=20"`
	QuizType          models.QuizType        `json:"quizType" validate:"omitempty,quiz_type"`
	IsPublic          bool                   `json:"isPublic"`
	TimeLimit         bool                   `json:"timeLimit"`
	Tags              []string               `json:"tags" validate:"omitempty,max=10,dive,notblank,max=50"`
}

// applyDefaults fills unset optional fields
func (r *CreateQuizRequest) applyDefaults() {
	if r.Difficulty == "" {
		r.Difficulty = models.DifficultyMedium
	}
	if r.NumberOfQuestions == 0 {
		r.NumberOfQuestions = DefaultQuestionCount
	}
	if r.QuizType == "" {
		r.QuizType = models.QuizMultipleChoice
	}
}

type QuizListRequest struct {
	Mine       bool                    `form:"mine"`
	Topic      string                  `form:"topic" validate:"omitempty,max=200"`
	Difficulty *models.DifficultyLevel `form:"difficulty" validate:"omitempty,difficulty_level"`
	QuizType   *models.QuizType        `form:"quizType" validate:"omitempty,quiz_type"`
	Tag        string                  `form:"tag" validate:"omitempty,max=50"`
	Page       int                     `form:"page" validate:"omitempty,min=1"`
	Size       int                     `form:"size" validate:"omitempty,min=1,max=50"`
}

type QuizResponse struct {
	*models.Quiz
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

type QuizListResponse struct {
	Quizzes []*models.Quiz `json:"quizzes"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Size    int            `json:"size"`
}

// ===== GRADING =====

type SubmittedAnswer struct {
	QuestionID     string `json:"_id"`
	SelectedAnswer string `json:"selectedAnswer"`
}

type SubmitAnswersRequest struct {
	Answers []SubmittedAnswer `json:"answers" validate:"required,dive"`
	// TimeTaken is decoded loosely; anything but a finite non-negative number becomes 0
	TimeTaken interface{} `json:"timeTaken"`
}

type SubmissionResult struct {
	Score     int                   `json:"score"`
	Total     int                   `json:"total"`
	Result    []models.GradedAnswer `json:"result"`
	AttemptID uint                  `json:"attemptId"`
}

type AttemptListRequest struct {
	Page int `form:"page" validate:"omitempty,min=1"`
	Size int `form:"size" validate:"omitempty,min=1,max=50"`
}

type AttemptListResponse struct {
	Attempts []*models.Attempt `json:"attempts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

// ===== RATING =====

type RateQuizRequest struct {
	Rating int `json:"rating" validate:"required,rating_value"`
}

type RatingStatsResponse struct {
	Average    float64 `json:"average"`
	Count      int64   `json:"count"`
	UserRating *int    `json:"userRating"`
}

type BatchRatingsRequest struct {
	QuizIDs []uint `json:"quizIds" validate:"required,min=1,max=100"`
}

// ===== RECOMMENDATIONS =====

const RecommendationTarget = 10

type QuizSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	Author     string `json:"author"`
	Difficulty string `json:"difficulty"`
}

// ===== STATISTICS =====

const DailyScoreTarget = 85

type DailyScore struct {
	Date      string `json:"date"`
	Score     int    `json:"score"`
	Target    int    `json:"target"`
	MetTarget bool   `json:"metTarget"`
}

type StatisticsResponse struct {
	*models.Statistics
	TimeSpentFormatted string       `json:"timeSpentFormatted"`
	DailyScores        []DailyScore `json:"dailyScores"`
}

// StatisticsInput is everything the snapshot is computed from
type StatisticsInput struct {
	UserID           string
	QuizzesCreated   int64
	QuizzesThisWeek  int64
	QuizzesThisMonth int64
	Attempts         []*models.Attempt
	Now              time.Time
}

// ===== USER DATA =====

type UserDataDeletionResult struct {
	QuizzesDeleted  int64 `json:"quizzesDeleted"`
	AttemptsDeleted int64 `json:"attemptsDeleted"`
	RatingsDeleted  int64 `json:"ratingsDeleted"`
}
