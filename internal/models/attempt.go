package models

import (
	"time"

	"gorm.io/datatypes"
)

// Attempt is one graded submission of answers against a quiz. It is written
// once and never updated.
type Attempt struct {
	ID        uint                              `json:"id" gorm:"primaryKey"`
	UserID    string                            `json:"user_id" gorm:"not null;size:255;index"`
	QuizID    uint                              `json:"quiz_id" gorm:"not null;index"`
	Answers   datatypes.JSONSlice[GradedAnswer] `json:"answers" gorm:"type:jsonb;not null"`
	Score     int                               `json:"score" gorm:"not null"`
	TimeTaken float64                           `json:"time_taken"` // seconds
	CreatedAt time.Time                         `json:"created_at" gorm:"index"`

	// Relations. No foreign key: an attempt outlives the quiz it was taken on,
	// so Quiz is nil once the author deletes their data.
	Quiz *Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:-"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// Percentage is the attempt score relative to the answers that were graded.
func (a *Attempt) Percentage() float64 {
	if len(a.Answers) == 0 {
		return 0
	}
	return float64(a.Score) / float64(len(a.Answers)) * 100
}

type GradedAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	CorrectAnswer  string `json:"correctAnswer"`
	Explanation    string `json:"explanation"`
}
