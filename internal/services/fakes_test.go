package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// ===== GENERATION GATEWAY MOCK =====

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// ===== IN-MEMORY REPOSITORY =====

type memRepo struct {
	mu       sync.Mutex
	clock    time.Time
	nextID   uint
	quizzes  map[uint]*models.Quiz
	attempts map[uint]*models.Attempt
	ratings  map[string]*models.Rating
	stats    map[string]*models.Statistics
	users    map[string]*models.User

	statsUpserts int
}

func newMemRepo() *memRepo {
	return &memRepo{
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		quizzes:  make(map[uint]*models.Quiz),
		attempts: make(map[uint]*models.Attempt),
		ratings:  make(map[string]*models.Rating),
		stats:    make(map[string]*models.Statistics),
		users:    make(map[string]*models.User),
	}
}

// tick advances the fake clock so creation order is strictly increasing
func (r *memRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *memRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memRepo) Quiz() repositories.QuizRepository             { return (*memQuizRepo)(r) }
func (r *memRepo) Attempt() repositories.AttemptRepository       { return (*memAttemptRepo)(r) }
func (r *memRepo) Rating() repositories.RatingRepository         { return (*memRatingRepo)(r) }
func (r *memRepo) Statistics() repositories.StatisticsRepository { return (*memStatsRepo)(r) }
func (r *memRepo) User() repositories.UserRepository             { return (*memUserRepo)(r) }
func (r *memRepo) Ping(context.Context) error                    { return nil }
func (r *memRepo) Close() error                                  { return nil }

// addQuiz stores a quiz directly, bypassing generation
func (r *memRepo) addQuiz(quiz *models.Quiz) *models.Quiz {
	_ = r.Quiz().Create(context.Background(), quiz)
	return quiz
}

func (r *memRepo) ratingRows(quizID uint) []*models.Rating {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []*models.Rating
	for _, rating := range r.ratings {
		if rating.QuizID == quizID {
			rows = append(rows, rating)
		}
	}
	return rows
}

type memQuizRepo memRepo

func (q *memQuizRepo) Create(_ context.Context, quiz *models.Quiz) error {
	r := (*memRepo)(q)
	r.mu.Lock()
	defer r.mu.Unlock()
	quiz.ID = r.id()
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = r.tick()
	}
	copied := *quiz
	r.quizzes[quiz.ID] = &copied
	return nil
}

func (q *memQuizRepo) GetByID(_ context.Context, id uint) (*models.Quiz, error) {
	r := (*memRepo)(q)
	r.mu.Lock()
	defer r.mu.Unlock()
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (q *memQuizRepo) List(_ context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	r := (*memRepo)(q)
	r.mu.Lock()
	defer r.mu.Unlock()

	excluded := make(map[uint]bool)
	for _, id := range filters.ExcludeIDs {
		excluded[id] = true
	}

	var matched []*models.Quiz
	for _, quiz := range r.quizzes {
		if filters.PublicOnly && !quiz.IsPublic {
			continue
		}
		if filters.CreatedBy != nil && quiz.CreatedBy != *filters.CreatedBy {
			continue
		}
		if filters.ExcludeCreator != nil && quiz.CreatedBy == *filters.ExcludeCreator {
			continue
		}
		if excluded[quiz.ID] {
			continue
		}
		if len(filters.Topics) > 0 && !containsString(filters.Topics, quiz.Topic) {
			continue
		}
		if filters.Difficulty != nil && quiz.Difficulty != *filters.Difficulty {
			continue
		}
		if filters.QuizType != nil && quiz.QuizType != *filters.QuizType {
			continue
		}
		if filters.Tag != nil && !containsString(quiz.Tags, *filters.Tag) {
			continue
		}
		copied := *quiz
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filters.Offset:]
		}
	}
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (q *memQuizRepo) ListIDsByCreator(_ context.Context, userID string) ([]uint, error) {
	r := (*memRepo)(q)
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint
	for id, quiz := range r.quizzes {
		if quiz.CreatedBy == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (q *memQuizRepo) CountByCreator(_ context.Context, userID string, since *time.Time) (int64, error) {
	r := (*memRepo)(q)
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, quiz := range r.quizzes {
		if quiz.CreatedBy == userID && (since == nil || !quiz.CreatedAt.Before(*since)) {
			count++
		}
	}
	return count, nil
}

func (q *memQuizRepo) DeleteByCreator(_ context.Context, userID string) (int64, error) {
	r := (*memRepo)(q)
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, quiz := range r.quizzes {
		if quiz.CreatedBy == userID {
			delete(r.quizzes, id)
			n++
		}
	}
	return n, nil
}

type memAttemptRepo memRepo

func (a *memAttemptRepo) Create(_ context.Context, attempt *models.Attempt) error {
	r := (*memRepo)(a)
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt.ID = r.id()
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = r.tick()
	}
	copied := *attempt
	r.attempts[attempt.ID] = &copied
	return nil
}

func (a *memAttemptRepo) withQuiz(attempt *models.Attempt) *models.Attempt {
	copied := *attempt
	if quiz, ok := a.quizzes[attempt.QuizID]; ok {
		q := *quiz
		copied.Quiz = &q
	}
	return &copied
}

func (a *memAttemptRepo) GetByID(_ context.Context, id uint) (*models.Attempt, error) {
	r := (*memRepo)(a)
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a.withQuiz(attempt), nil
}

func (a *memAttemptRepo) userAttempts(userID string) []*models.Attempt {
	var out []*models.Attempt
	for _, attempt := range a.attempts {
		if attempt.UserID == userID {
			out = append(out, a.withQuiz(attempt))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (a *memAttemptRepo) List(_ context.Context, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	r := (*memRepo)(a)
	r.mu.Lock()
	defer r.mu.Unlock()
	history := a.userAttempts(filters.UserID)
	newest := make([]*models.Attempt, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		newest = append(newest, history[i])
	}
	total := int64(len(newest))
	if filters.Offset >= len(newest) {
		return []*models.Attempt{}, total, nil
	}
	newest = newest[filters.Offset:]
	if filters.Limit > 0 && len(newest) > filters.Limit {
		newest = newest[:filters.Limit]
	}
	return newest, total, nil
}

func (a *memAttemptRepo) ListByUser(_ context.Context, userID string) ([]*models.Attempt, error) {
	r := (*memRepo)(a)
	r.mu.Lock()
	defer r.mu.Unlock()
	return a.userAttempts(userID), nil
}

func (a *memAttemptRepo) CountByUser(_ context.Context, userID string, since *time.Time) (int64, error) {
	r := (*memRepo)(a)
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, attempt := range r.attempts {
		if attempt.UserID == userID && (since == nil || !attempt.CreatedAt.Before(*since)) {
			count++
		}
	}
	return count, nil
}

func (a *memAttemptRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r := (*memRepo)(a)
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, attempt := range r.attempts {
		if attempt.UserID == userID {
			delete(r.attempts, id)
			n++
		}
	}
	return n, nil
}

type memRatingRepo memRepo

func ratingKey(userID string, quizID uint) string {
	return fmt.Sprintf("%s/%d", userID, quizID)
}

func (rr *memRatingRepo) Upsert(_ context.Context, rating *models.Rating) error {
	r := (*memRepo)(rr)
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ratingKey(rating.UserID, rating.QuizID)
	if existing, ok := r.ratings[key]; ok {
		existing.Value = rating.Value
		existing.UpdatedAt = r.tick()
		return nil
	}
	copied := *rating
	copied.ID = r.id()
	r.ratings[key] = &copied
	return nil
}

func (rr *memRatingRepo) GetByUserAndQuiz(_ context.Context, userID string, quizID uint) (*models.Rating, error) {
	r := (*memRepo)(rr)
	r.mu.Lock()
	defer r.mu.Unlock()
	rating, ok := r.ratings[ratingKey(userID, quizID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rating
	return &copied, nil
}

func (rr *memRatingRepo) StatsByQuiz(ctx context.Context, quizID uint) (*repositories.RatingStats, error) {
	all, err := rr.StatsByQuizIDs(ctx, []uint{quizID})
	if err != nil {
		return nil, err
	}
	stats := all[quizID]
	stats.QuizID = quizID
	return &stats, nil
}

func (rr *memRatingRepo) StatsByQuizIDs(_ context.Context, quizIDs []uint) (map[uint]repositories.RatingStats, error) {
	r := (*memRepo)(rr)
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := make(map[uint]int)
	result := make(map[uint]repositories.RatingStats)
	for _, rating := range r.ratings {
		for _, id := range quizIDs {
			if rating.QuizID == id {
				stats := result[id]
				stats.QuizID = id
				stats.Count++
				sums[id] += rating.Value
				stats.Average = float64(sums[id]) / float64(stats.Count)
				result[id] = stats
			}
		}
	}
	return result, nil
}

func (rr *memRatingRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r := (*memRepo)(rr)
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key, rating := range r.ratings {
		if rating.UserID == userID {
			delete(r.ratings, key)
			n++
		}
	}
	return n, nil
}

func (rr *memRatingRepo) DeleteByQuizIDs(_ context.Context, quizIDs []uint) (int64, error) {
	r := (*memRepo)(rr)
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key, rating := range r.ratings {
		for _, id := range quizIDs {
			if rating.QuizID == id {
				delete(r.ratings, key)
				n++
				break
			}
		}
	}
	return n, nil
}

type memStatsRepo memRepo

func (s *memStatsRepo) Upsert(_ context.Context, stats *models.Statistics) error {
	r := (*memRepo)(s)
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *stats
	r.stats[stats.UserID] = &copied
	r.statsUpserts++
	return nil
}

func (s *memStatsRepo) DeleteByUser(_ context.Context, userID string) error {
	r := (*memRepo)(s)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stats, userID)
	return nil
}

type memUserRepo memRepo

func (u *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r := (*memRepo)(u)
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (u *memUserRepo) GetByIDs(_ context.Context, ids []string) ([]*models.User, error) {
	r := (*memRepo)(u)
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*models.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (u *memUserRepo) Upsert(_ context.Context, user *models.User) error {
	r := (*memRepo)(u)
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// ===== HELPERS =====

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	repo      *memRepo
	gateway   *MockGateway
	publisher *events.MockEventPublisher
	services  ServiceManager
	now       time.Time
}

func newTestEnv() *testEnv {
	repo := newMemRepo()
	gateway := new(MockGateway)
	publisher := events.NewMockEventPublisher(discardLogger())
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	return &testEnv{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		now:       now,
		services: NewServiceManager(Dependencies{
			Repo:           repo,
			Gateway:        gateway,
			EventPublisher: publisher,
			Logger:         discardLogger(),
			Now:            func() time.Time { return now },
		}),
	}
}

func trueFalseQuiz(creator string, public bool, questions ...models.Question) *models.Quiz {
	return &models.Quiz{
		Topic:      "Algebra",
		QuizType:   models.QuizTrueFalse,
		Difficulty: models.DifficultyMedium,
		IsPublic:   public,
		Questions:  questions,
		CreatedBy:  creator,
	}
}

func tfQuestion(id, text, correct string) models.Question {
	return models.Question{
		ID:            id,
		QuestionText:  text,
		Options:       []string{"True", "False"},
		CorrectAnswer: correct,
		Explanation:   text + " explained",
		Type:          models.TrueFalse,
	}
}
