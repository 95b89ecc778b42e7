package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

var trueFalseOptions = []string{"True", "False"}

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion checks a generated question against the shape its
// resolved type demands.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if strings.TrimSpace(question.QuestionText) == "" {
		return fmt.Errorf("question text is required")
	}

	switch question.Type {
	case models.MultipleChoice:
		if err := v.validateMultipleChoice(question); err != nil {
			return err
		}
	case models.TrueFalse:
		if err := v.validateTrueFalse(question); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported question type: %q", question.Type)
	}

	return v.validateCorrectAnswer(question)
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	for i := range questions {
		if err := v.ValidateQuestion(&questions[i]); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

func (v *QuestionValidator) validateMultipleChoice(question *models.Question) error {
	if len(question.Options) != 4 {
		return fmt.Errorf("multiple choice question must have exactly 4 options, got %d", len(question.Options))
	}

	seen := make(map[string]bool, len(question.Options))
	for _, option := range question.Options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("option text cannot be empty")
		}
		if seen[option] {
			return fmt.Errorf("duplicate option %q", option)
		}
		seen[option] = true
	}
	return nil
}

func (v *QuestionValidator) validateTrueFalse(question *models.Question) error {
	if len(question.Options) != len(trueFalseOptions) {
		return fmt.Errorf("true/false question must have exactly 2 options, got %d", len(question.Options))
	}
	if question.Options[0] == question.Options[1] {
		return fmt.Errorf("true/false options must be %v, got %v", trueFalseOptions, question.Options)
	}
	for _, option := range question.Options {
		if option != trueFalseOptions[0] && option != trueFalseOptions[1] {
			return fmt.Errorf("true/false options must be %v, got %v", trueFalseOptions, question.Options)
		}
	}
	return nil
}

func (v *QuestionValidator) validateCorrectAnswer(question *models.Question) error {
	for _, option := range question.Options {
		if option == question.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("correct answer %q does not match any option", question.CorrectAnswer)
}
