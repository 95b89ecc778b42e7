package models

import (
	"time"

	"gorm.io/datatypes"
)

// Statistics is a per-user snapshot recomputed from quizzes and attempts on
// every read. It is never consulted as an input.
type Statistics struct {
	UserID           string                     `json:"user_id" gorm:"primaryKey;size:255"`
	QuizzesCreated   int                        `json:"quizzes_created"`
	QuizzesCompleted int                        `json:"quizzes_completed"`
	QuizzesThisWeek  int                        `json:"quizzes_this_week"`
	QuizzesThisMonth int                        `json:"quizzes_this_month"`
	TotalScore       int                        `json:"total_score"`
	TotalQuestions   int                        `json:"total_questions"`
	TotalTimeSpent   float64                    `json:"total_time_spent"` // seconds
	AverageScore     int                        `json:"average_score"`    // 0-100
	Points           float64                    `json:"points"`
	Badges           datatypes.JSONSlice[Badge] `json:"badges" gorm:"type:jsonb"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

func (Statistics) TableName() string {
	return "statistics"
}

type Badge struct {
	Tier      int     `json:"tier"`
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}
