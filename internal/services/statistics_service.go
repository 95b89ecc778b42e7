package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	pointsPerQuizCreated   = 1.0
	pointsPerQuizCompleted = 0.5
	dailySeriesDays        = 7
)

// BadgeTiers are the point thresholds for the star badges, lowest first
var BadgeTiers = []float64{10, 20, 30, 40, 50}

type statisticsService struct {
	repo   repositories.Repository
	logger *ServiceLogger
	now    func() time.Time
}

func NewStatisticsService(repo repositories.Repository, logger *ServiceLogger, now func() time.Time) StatisticsService {
	return newStatisticsService(repo, logger, now)
}

func newStatisticsService(repo repositories.Repository, logger *ServiceLogger, now func() time.Time) *statisticsService {
	if now == nil {
		now = time.Now
	}
	return &statisticsService{
		repo:   repo,
		logger: logger,
		now:    now,
	}
}

// Get recomputes the snapshot from quizzes and attempts, then stores it.
// The stored snapshot is never read back.
func (s *statisticsService) Get(ctx context.Context, userID string) (resp *StatisticsResponse, err error) {
	op := s.logger.WithOperation(ctx, "get_statistics", userID)
	defer func() { op.LogResult(nil, "statistics", err) }()

	input, err := s.loadInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp = ComputeStatistics(input)

	if err := s.repo.Statistics().Upsert(ctx, resp.Statistics); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to persist statistics snapshot", "user_id", userID, "error", err)
	}
	return resp, nil
}

// loadInput fans out the independent reads
func (s *statisticsService) loadInput(ctx context.Context, userID string) (*StatisticsInput, error) {
	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	input := &StatisticsInput{UserID: userID, Now: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.repo.Quiz().CountByCreator(gctx, userID, nil)
		if err != nil {
			return fmt.Errorf("failed to count created quizzes: %w", err)
		}
		input.QuizzesCreated = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.Attempt().CountByUser(gctx, userID, &weekAgo)
		if err != nil {
			return fmt.Errorf("failed to count weekly attempts: %w", err)
		}
		input.QuizzesThisWeek = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.Attempt().CountByUser(gctx, userID, &monthAgo)
		if err != nil {
			return fmt.Errorf("failed to count monthly attempts: %w", err)
		}
		input.QuizzesThisMonth = count
		return nil
	})
	g.Go(func() error {
		attempts, err := s.repo.Attempt().ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load attempts: %w", err)
		}
		input.Attempts = attempts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return input, nil
}

// ComputeStatistics derives the full snapshot from raw counts and attempts
func ComputeStatistics(input *StatisticsInput) *StatisticsResponse {
	stats := &models.Statistics{
		UserID:           input.UserID,
		QuizzesCreated:   int(input.QuizzesCreated),
		QuizzesCompleted: len(input.Attempts),
		QuizzesThisWeek:  int(input.QuizzesThisWeek),
		QuizzesThisMonth: int(input.QuizzesThisMonth),
		UpdatedAt:        input.Now,
	}

	for _, attempt := range input.Attempts {
		stats.TotalScore += attempt.Score
		stats.TotalQuestions += len(attempt.Answers)
		stats.TotalTimeSpent += sanitizeSeconds(attempt.TimeTaken)
	}

	stats.AverageScore = AverageScore(stats.TotalScore, stats.TotalQuestions)
	stats.Points = Points(stats.QuizzesCreated, stats.QuizzesCompleted)
	stats.Badges = BadgesFor(stats.Points)

	return &StatisticsResponse{
		Statistics:         stats,
		TimeSpentFormatted: FormatTimeSpent(stats.TotalTimeSpent),
		DailyScores:        DailyScores(input.Attempts, input.Now),
	}
}

func AverageScore(totalScore, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(100 * float64(totalScore) / float64(totalQuestions)))
}

func Points(created, completed int) float64 {
	return float64(created)*pointsPerQuizCreated + float64(completed)*pointsPerQuizCompleted
}

// BadgesFor returns every tier whose threshold points has reached
func BadgesFor(points float64) []models.Badge {
	badges := make([]models.Badge, 0, len(BadgeTiers))
	for i, threshold := range BadgeTiers {
		if points < threshold {
			break
		}
		tier := i + 1
		badges = append(badges, models.Badge{
			Tier:      tier,
			Name:      fmt.Sprintf("%d-Star", tier),
			Threshold: threshold,
		})
	}
	return badges
}

func FormatTimeSpent(seconds float64) string {
	total := int64(sanitizeSeconds(seconds))
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

// DailyScores averages attempt percentages for each of the last seven
// calendar days in now's location, oldest first.
func DailyScores(attempts []*models.Attempt, now time.Time) []DailyScore {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	sums := make([]float64, dailySeriesDays)
	counts := make([]int, dailySeriesDays)
	for _, attempt := range attempts {
		created := attempt.CreatedAt.In(loc)
		day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, loc)
		daysAgo := int(math.Round(today.Sub(day).Hours() / 24))
		if daysAgo < 0 || daysAgo >= dailySeriesDays {
			continue
		}
		idx := dailySeriesDays - 1 - daysAgo
		sums[idx] += attempt.Percentage()
		counts[idx]++
	}

	series := make([]DailyScore, dailySeriesDays)
	for i := range series {
		score := 0
		if counts[i] > 0 {
			score = int(math.Round(sums[i] / float64(counts[i])))
		}
		series[i] = DailyScore{
			Date:      today.AddDate(0, 0, i-(dailySeriesDays-1)).Format("2006-01-02"),
			Score:     score,
			Target:    DailyScoreTarget,
			MetTarget: score >= DailyScoreTarget,
		}
	}
	return series
}

func sanitizeSeconds(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
