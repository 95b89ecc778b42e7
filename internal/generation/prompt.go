package generation

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// Request describes the quiz a caller wants generated
type Request struct {
	Topic       string
	Description string
	Difficulty  models.DifficultyLevel
	Count       int
	QuizType    models.QuizType
}

const exampleOutput = `[
  {
    "questionText": "What is the capital of France?",
    "options": ["Berlin", "Madrid", "Paris", "Rome"],
    "correctAnswer": "Paris",
    "explanation": "Paris has been the capital of France since the 10th century."
  },
  {
    "questionText": "The Earth orbits the Sun.",
    "options": ["True", "False"],
    "correctAnswer": "True",
    "explanation": "The Earth completes one orbit around the Sun roughly every 365 days."
  }
]`

// BuildPrompt renders the instruction sent to the generative service.
// The output depends only on req.
func BuildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d %s quiz questions about the topic \"%s\".\n", req.Count, req.Difficulty, req.Topic)
	if desc := strings.TrimSpace(req.Description); desc != "" {
		fmt.Fprintf(&b, "Additional context for the quiz: %s\n", desc)
	}
	fmt.Fprintf(&b, "The difficulty level of every question must be %s.\n\n", req.Difficulty)

	b.WriteString("Question format rules:\n")
	b.WriteString(shapeRules(req.QuizType))
	b.WriteString("- \"correctAnswer\" must be exactly one of the strings in \"options\".\n")
	b.WriteString("- \"explanation\" must briefly explain why the correct answer is right.\n\n")

	b.WriteString("Respond with a JSON array only, no surrounding text, using exactly this shape:\n")
	b.WriteString(exampleOutput)
	b.WriteString("\n")

	return b.String()
}

func shapeRules(quizType models.QuizType) string {
	switch quizType {
	case models.QuizTrueFalse:
		return "- Every question is a true/false statement.\n" +
			"- \"options\" must be exactly [\"True\", \"False\"].\n"
	case models.QuizMixed:
		return "- Mix true/false and multiple-choice questions within the set.\n" +
			"- A true/false question has exactly 2 options: [\"True\", \"False\"].\n" +
			"- A multiple-choice question has exactly 4 distinct options.\n"
	default:
		return "- Every question is multiple-choice.\n" +
			"- \"options\" must contain exactly 4 distinct answers.\n"
	}
}
