package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

const (
	favoriteTopicCount  = 2
	questionPlaceholder = "No questions yet"
	unknownAuthor       = "Unknown"
)

type recommendationService struct {
	repo   repositories.Repository
	logger *ServiceLogger
}

func NewRecommendationService(repo repositories.Repository, logger *ServiceLogger) RecommendationService {
	return &recommendationService{
		repo:   repo,
		logger: logger,
	}
}

// Recommend returns up to RecommendationTarget public quizzes the user has
// neither written nor attempted, preferring their favourite topics and
// difficulty and backfilling by recency.
func (s *recommendationService) Recommend(ctx context.Context, userID string) (summaries []QuizSummary, err error) {
	op := s.logger.WithOperation(ctx, "recommend_quizzes", userID)
	defer func() { op.LogResult(nil, "recommendation", err) }()

	history, err := s.repo.Attempt().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt history: %w", err)
	}

	prefs := DerivePreferences(history)

	filters := repositories.QuizFilters{
		PublicOnly:     true,
		ExcludeCreator: &userID,
		ExcludeIDs:     prefs.AttemptedIDs,
		Topics:         prefs.Topics,
		Difficulty:     prefs.Difficulty,
		Limit:          RecommendationTarget,
	}

	selected, _, err := s.repo.Quiz().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate quizzes: %w", err)
	}

	if len(selected) < RecommendationTarget && prefs.hasPreference() {
		exclude := append(append([]uint{}, prefs.AttemptedIDs...), quizIDs(selected)...)
		backfill, _, err := s.repo.Quiz().List(ctx, repositories.QuizFilters{
			PublicOnly:     true,
			ExcludeCreator: &userID,
			ExcludeIDs:     exclude,
			Limit:          RecommendationTarget - len(selected),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list backfill quizzes: %w", err)
		}
		selected = append(selected, backfill...)
	}

	selected = dedupeQuizzes(selected, RecommendationTarget)
	return s.summarize(ctx, selected)
}

func (s *recommendationService) summarize(ctx context.Context, quizzes []*models.Quiz) ([]QuizSummary, error) {
	authorIDs := make([]string, 0, len(quizzes))
	seen := make(map[string]bool)
	for _, quiz := range quizzes {
		if !seen[quiz.CreatedBy] {
			seen[quiz.CreatedBy] = true
			authorIDs = append(authorIDs, quiz.CreatedBy)
		}
	}

	users, err := s.repo.User().GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.DisplayName()
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		author, ok := names[quiz.CreatedBy]
		if !ok || author == "" {
			author = unknownAuthor
		}
		summaries = append(summaries, QuizSummary{
			ID:         quiz.ID,
			Title:      quizTitle(quiz),
			Topic:      quiz.Topic,
			Author:     author,
			Difficulty: quiz.Difficulty.Label(),
		})
	}
	return summaries, nil
}

// Preferences is what a user's attempt history says about their taste
type Preferences struct {
	AttemptedIDs []uint
	Topics       []string
	Difficulty   *models.DifficultyLevel
}

func (p Preferences) hasPreference() bool {
	return len(p.Topics) > 0 || p.Difficulty != nil
}

// DerivePreferences tallies topics and difficulties over the history,
// walked oldest to newest. Equal counts keep first-encountered order.
func DerivePreferences(history []*models.Attempt) Preferences {
	var prefs Preferences
	attempted := make(map[uint]bool)
	topics := newTally()
	difficulties := newTally()

	for _, attempt := range history {
		if !attempted[attempt.QuizID] {
			attempted[attempt.QuizID] = true
			prefs.AttemptedIDs = append(prefs.AttemptedIDs, attempt.QuizID)
		}
		if attempt.Quiz == nil {
			continue
		}
		topics.add(attempt.Quiz.Topic)
		difficulties.add(string(attempt.Quiz.Difficulty))
	}

	prefs.Topics = topics.top(favoriteTopicCount)
	if top := difficulties.top(1); len(top) == 1 {
		difficulty := models.DifficultyLevel(top[0])
		prefs.Difficulty = &difficulty
	}
	return prefs
}

type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if key == "" {
		return
	}
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

func (t *tally) top(n int) []string {
	keys := append([]string{}, t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func quizTitle(quiz *models.Quiz) string {
	representative := questionPlaceholder
	if len(quiz.Questions) > 0 && quiz.Questions[0].QuestionText != "" {
		representative = quiz.Questions[0].QuestionText
	}
	return fmt.Sprintf("%s: %s", quiz.Topic, representative)
}

func quizIDs(quizzes []*models.Quiz) []uint {
	ids := make([]uint, 0, len(quizzes))
	for _, quiz := range quizzes {
		ids = append(ids, quiz.ID)
	}
	return ids
}

func dedupeQuizzes(quizzes []*models.Quiz, limit int) []*models.Quiz {
	seen := make(map[uint]bool, len(quizzes))
	out := make([]*models.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if seen[quiz.ID] {
			continue
		}
		seen[quiz.ID] = true
		out = append(out, quiz)
		if len(out) == limit {
			break
		}
	}
	return out
}
