package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// Normalizer turns the generative service's raw reply into typed questions
type Normalizer interface {
	Normalize(raw string, quizType models.QuizType) ([]models.Question, error)
}

// BracketNormalizer slices the reply between its first '[' and last ']'
// and parses that as a JSON array, ignoring any surrounding prose.
type BracketNormalizer struct{}

func NewBracketNormalizer() *BracketNormalizer {
	return &BracketNormalizer{}
}

type rawQuestion struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Normalize returns questions with a resolved type. An empty array yields
// an empty, non-nil slice.
func (n *BracketNormalizer) Normalize(raw string, quizType models.QuizType) ([]models.Question, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, upstream("parse", errors.New("no JSON array found in response"))
	}

	var parsed []rawQuestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, upstream("parse", fmt.Errorf("invalid JSON array: %w", err))
	}

	questions := make([]models.Question, 0, len(parsed))
	for _, p := range parsed {
		questions = append(questions, models.Question{
			QuestionText:  p.QuestionText,
			Options:       p.Options,
			CorrectAnswer: p.CorrectAnswer,
			Explanation:   p.Explanation,
			Type:          ResolveType(quizType, len(p.Options)),
		})
	}
	return questions, nil
}

// ResolveType picks a question's type: mixed quizzes infer it from the
// option count, every other quiz type applies uniformly.
func ResolveType(quizType models.QuizType, optionCount int) models.QuestionType {
	switch quizType {
	case models.QuizMixed:
		if optionCount == 2 {
			return models.TrueFalse
		}
		return models.MultipleChoice
	case models.QuizTrueFalse:
		return models.TrueFalse
	default:
		return models.MultipleChoice
	}
}
