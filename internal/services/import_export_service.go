package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	attemptsSheet = "Attempts"
	summarySheet  = "Summary"
)

type exportService struct {
	statistics *statisticsService
	logger     *ServiceLogger
}

func NewExportService(repo repositories.Repository, logger *ServiceLogger, now func() time.Time) ExportService {
	return &exportService{
		statistics: newStatisticsService(repo, logger, now),
		logger:     logger,
	}
}

// ExportStatistics writes the user's attempt history and a freshly computed
// statistics snapshot as an xlsx workbook.
func (s *exportService) ExportStatistics(ctx context.Context, userID string, w io.Writer) (err error) {
	op := s.logger.WithOperation(ctx, "export_statistics", userID)
	defer func() { op.LogResult(nil, "statistics_export", err) }()

	input, err := s.statistics.loadInput(ctx, userID)
	if err != nil {
		return err
	}
	snapshot := ComputeStatistics(input)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []interface{}{"Attempt ID", "Quiz ID", "Topic", "Difficulty", "Score", "Answered", "Percentage", "Time Taken (seconds)", "Submitted At"}
	if err := writeRow(f, attemptsSheet, 1, headers); err != nil {
		return err
	}

	// newest first
	for i := len(input.Attempts) - 1; i >= 0; i-- {
		attempt := input.Attempts[i]
		topic, difficulty := "", ""
		if attempt.Quiz != nil {
			topic = attempt.Quiz.Topic
			difficulty = attempt.Quiz.Difficulty.Label()
		}
		row := []interface{}{
			attempt.ID,
			attempt.QuizID,
			topic,
			difficulty,
			attempt.Score,
			len(attempt.Answers),
			roundTo2(attempt.Percentage()),
			attempt.TimeTaken,
			attempt.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writeRow(f, attemptsSheet, len(input.Attempts)-i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	stats := snapshot.Statistics
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Quizzes Created", stats.QuizzesCreated},
		{"Quizzes Completed", stats.QuizzesCompleted},
		{"Quizzes This Week", stats.QuizzesThisWeek},
		{"Quizzes This Month", stats.QuizzesThisMonth},
		{"Total Score", stats.TotalScore},
		{"Total Questions", stats.TotalQuestions},
		{"Average Score", stats.AverageScore},
		{"Time Spent", snapshot.TimeSpentFormatted},
		{"Points", stats.Points},
		{"Badges", len(stats.Badges)},
	}
	for i, row := range summary {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
