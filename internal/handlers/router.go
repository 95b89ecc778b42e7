package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerManager struct {
	quizHandler       *QuizHandler
	gradingHandler    *GradingHandler
	ratingHandler     *RatingHandler
	statisticsHandler *StatisticsHandler
	health            Pinger
	logger            utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, health Pinger, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), logger),
		gradingHandler: NewGradingHandler(serviceManager.Grading(), logger),
		ratingHandler:  NewRatingHandler(serviceManager.Rating(), logger),
		statisticsHandler: NewStatisticsHandler(
			serviceManager.Statistics(),
			serviceManager.Export(),
			serviceManager.Recommendation(),
			serviceManager.UserData(),
			logger,
		),
		health: health,
		logger: logger,
	}
}

// NewRouter builds the engine with recovery, request logging and CORS
func NewRouter(logger utils.Logger, allowedOrigins []string, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", userIDHeader, "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.AllowCredentials = true
	if len(allowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	return router
}

// SetupRoutes sets up all API routes; auth guards everything but /health
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	router.GET("/health", hm.HealthCheck)

	api := router.Group("/api/v1")
	api.Use(auth)
	{
		quizzes := api.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.POST("/ratings/batch", hm.ratingHandler.BatchRatings)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.POST("/:id/submit", hm.gradingHandler.SubmitAnswers)
			quizzes.GET("/:id/rating", hm.ratingHandler.GetRating)
			quizzes.POST("/:id/rating", hm.ratingHandler.RateQuiz)
		}

		attempts := api.Group("/attempts")
		{
			attempts.GET("", hm.gradingHandler.ListAttempts)
			attempts.GET("/:id", hm.gradingHandler.GetAttempt)
		}

		api.GET("/recommendations", hm.statisticsHandler.GetRecommendations)
		api.GET("/statistics", hm.statisticsHandler.GetStatistics)
		api.GET("/statistics/export", hm.statisticsHandler.ExportStatistics)
		api.DELETE("/users/me/data", hm.statisticsHandler.DeleteMyData)
	}
}

// HealthCheck reports liveness and store reachability
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status := gin.H{
		"status":  "healthy",
		"service": "quiz-service",
	}

	if hm.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := hm.health.Ping(ctx); err != nil {
			utils.GetLoggerFromContext(c, hm.logger).Warn("Health check failed", "error", err)
			status["status"] = "unhealthy"
			status["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}

	c.JSON(http.StatusOK, status)
}
