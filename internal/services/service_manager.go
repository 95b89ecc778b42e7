package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/generation"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

// Dependencies are the collaborators every service is built from
type Dependencies struct {
	Repo           repositories.Repository
	Cache          cache.CacheService
	CacheTTL       time.Duration
	Gateway        generation.Gateway
	Normalizer     generation.Normalizer
	EventPublisher events.EventPublisher
	Validator      *validator.Validator
	Logger         *slog.Logger
	Now            func() time.Time
}

type serviceManager struct {
	quiz           QuizService
	grading        GradingService
	rating         RatingService
	recommendation RecommendationService
	statistics     StatisticsService
	export         ExportService
	userData       UserDataService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCache()
	}
	if deps.Normalizer == nil {
		deps.Normalizer = generation.NewBracketNormalizer()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}

	quizzes := newQuizReader(deps.Repo.Quiz(), deps.Cache, deps.CacheTTL, deps.Logger)
	eventService := NewDomainEventService(deps.EventPublisher, deps.Logger)

	return &serviceManager{
		quiz: NewQuizService(deps.Repo, quizzes, deps.Gateway, deps.Normalizer, eventService,
			NewServiceLogger(deps.Logger, "quiz"), deps.Validator),
		grading: NewGradingService(deps.Repo, quizzes, eventService,
			NewServiceLogger(deps.Logger, "grading"), deps.Validator),
		rating: NewRatingService(deps.Repo, quizzes, eventService,
			NewServiceLogger(deps.Logger, "rating"), deps.Validator),
		recommendation: NewRecommendationService(deps.Repo, NewServiceLogger(deps.Logger, "recommendation")),
		statistics:     NewStatisticsService(deps.Repo, NewServiceLogger(deps.Logger, "statistics"), deps.Now),
		export:         NewExportService(deps.Repo, NewServiceLogger(deps.Logger, "export"), deps.Now),
		userData: NewUserDataService(deps.Repo, quizzes, eventService,
			NewServiceLogger(deps.Logger, "user_data")),
	}
}

func (m *serviceManager) Quiz() QuizService                     { return m.quiz }
func (m *serviceManager) Grading() GradingService               { return m.grading }
func (m *serviceManager) Rating() RatingService                 { return m.rating }
func (m *serviceManager) Recommendation() RecommendationService { return m.recommendation }
func (m *serviceManager) Statistics() StatisticsService         { return m.statistics }
func (m *serviceManager) Export() ExportService                 { return m.export }
func (m *serviceManager) UserData() UserDataService             { return m.userData }
