package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuizType string

const (
	QuizMultipleChoice QuizType = "multiple-choice"
	QuizTrueFalse      QuizType = "true-false"
	QuizMixed          QuizType = "mixed"
)

// QuestionType is the resolved per-question shape. Mixed is never a valid
// question type; it only exists at the quiz level.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Label returns the capitalized display form ("Easy", "Medium", "Hard").
func (d DifficultyLevel) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return capitalize(string(d))
	}
}

type Quiz struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Topic       string          `json:"topic" gorm:"not null;size:200;index"`
	Description *string         `json:"description" gorm:"type:text"`
	QuizType    QuizType        `json:"quiz_type" gorm:"not null;size:32"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"not null;size:16;index"`
	IsPublic    bool            `json:"is_public" gorm:"default:false;index"`
	TimeLimit   bool            `json:"time_limit" gorm:"default:false"`

	Questions datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb;not null"`
	Tags      datatypes.JSONSlice[string]   `json:"tags" gorm:"type:jsonb"`

	// Metadata
	CreatedBy string    `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// FindQuestion returns the embedded question with the given id.
func (q *Quiz) FindQuestion(id string) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// Question is embedded in the quiz document; ID is assigned once at creation
// and used by graders to look the question up later.
type Question struct {
	ID            string       `json:"_id"`
	QuestionText  string       `json:"questionText"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Type          QuestionType `json:"type"`
}
