package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/generation"
	"github.com/SAP-F-2025/quiz-service/internal/handlers"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger(false).LogError(err, "failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.IsProduction())
	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "quiz service stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	ctx := context.Background()
	slogger := logger.Slog()

	// ── Dependencies ────────────────────────────────────────────────
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	quizCache := cache.NewNoopCache()
	redisClient, err := pkg.NewRedisClient(cfg)
	switch {
	case err != nil:
		logger.Warn("Redis unavailable, quiz cache disabled", "error", err)
	case redisClient != nil:
		defer redisClient.Close()
		quizCache = cache.NewRedisCache(redisClient, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	gateway, err := generation.NewGeminiGateway(ctx, generation.GeminiConfig{
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
		Timeout: cfg.Generation.Timeout,
		Logger:  slogger,
	})
	if err != nil {
		return err
	}
	defer gateway.Close()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:           repo,
		Cache:          quizCache,
		CacheTTL:       cfg.CacheTTL,
		Gateway:        gateway,
		EventPublisher: publisher,
		Logger:         slogger,
	})

	// ── Routes ──────────────────────────────────────────────────────
	router := handlers.NewRouter(logger, cfg.CORSAllowedOrigins, cfg.IsProduction())
	handlers.NewHandlerManager(serviceManager, repo, logger).SetupRoutes(router, authMiddleware(cfg, repo, logger))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		// generation can take most of its own timeout
		WriteTimeout: cfg.Generation.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "address", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-sigChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "server forced to shutdown")
	}
	return nil
}

func authMiddleware(cfg *config.Config, repo repositories.Repository, logger utils.Logger) gin.HandlerFunc {
	if cfg.Auth.Mode == "header" {
		logger.Warn("Header authentication enabled; X-User-ID is trusted as-is")
		return handlers.HeaderAuth()
	}

	client := handlers.NewCasdoorClient(
		cfg.Auth.Endpoint,
		cfg.Auth.ClientID,
		cfg.Auth.ClientSecret,
		cfg.Auth.Certificate,
		cfg.Auth.Organization,
		cfg.Auth.Application,
	)
	return handlers.CasdoorAuth(client, repo.User(), logger)
}
