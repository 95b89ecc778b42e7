package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db         *gorm.DB
	quiz       repositories.QuizRepository
	attempt    repositories.AttemptRepository
	rating     repositories.RatingRepository
	statistics repositories.StatisticsRepository
	user       repositories.UserRepository
}

// NewRepository builds every postgres repository over one connection pool
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:         db,
		quiz:       NewQuizPostgreSQL(db),
		attempt:    NewAttemptPostgreSQL(db),
		rating:     NewRatingPostgreSQL(db),
		statistics: NewStatisticsPostgreSQL(db),
		user:       NewUserPostgreSQL(db),
	}
}

func (r *repository) Quiz() repositories.QuizRepository             { return r.quiz }
func (r *repository) Attempt() repositories.AttemptRepository       { return r.attempt }
func (r *repository) Rating() repositories.RatingRepository         { return r.rating }
func (r *repository) Statistics() repositories.StatisticsRepository { return r.statistics }
func (r *repository) User() repositories.UserRepository             { return r.user }

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
