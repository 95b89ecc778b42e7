package generation

import (
	"errors"
	"strings"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	req := Request{
		Topic:       "Algebra",
		Description: "linear equations only",
		Difficulty:  models.DifficultyHard,
		Count:       7,
		QuizType:    models.QuizTrueFalse,
	}

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, `"Algebra"`)
	assert.Contains(t, prompt, "linear equations only")
	assert.Contains(t, prompt, "Generate 7 hard")
	assert.Contains(t, prompt, `exactly ["True", "False"]`)
	for _, field := range []string{"questionText", "options", "correctAnswer", "explanation"} {
		assert.Contains(t, prompt, field)
	}

	assert.Equal(t, prompt, BuildPrompt(req), "prompt must be deterministic")
}

func TestBuildPrompt_ShapeRulesPerType(t *testing.T) {
	base := Request{Topic: "History", Difficulty: models.DifficultyEasy, Count: 3}

	mc := base
	mc.QuizType = models.QuizMultipleChoice
	assert.Contains(t, BuildPrompt(mc), "exactly 4 distinct answers")

	mixed := base
	mixed.QuizType = models.QuizMixed
	mixedPrompt := BuildPrompt(mixed)
	assert.Contains(t, mixedPrompt, "Mix true/false and multiple-choice")
	assert.Contains(t, mixedPrompt, "exactly 2 options")
	assert.Contains(t, mixedPrompt, "exactly 4 distinct options")

	assert.NotContains(t, BuildPrompt(base), "Additional context")
}

func TestNormalize_ToleratesSurroundingProse(t *testing.T) {
	raw := "Sure! Here is your quiz:\n```json\n" +
		`[{"questionText":"2+2=4","options":["True","False"],"correctAnswer":"True","explanation":"basic"}]` +
		"\n```\nGood luck!"

	questions, err := NewBracketNormalizer().Normalize(raw, models.QuizTrueFalse)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "2+2=4", questions[0].QuestionText)
	assert.Equal(t, models.TrueFalse, questions[0].Type)
	assert.Equal(t, "basic", questions[0].Explanation)
}

func TestNormalize_MixedInfersTypeFromOptionCount(t *testing.T) {
	raw := `[
		{"questionText":"a","options":["True","False"],"correctAnswer":"True"},
		{"questionText":"b","options":["1","2","3","4"],"correctAnswer":"2"},
		{"questionText":"c","options":["x","y","z"],"correctAnswer":"x"},
		{"questionText":"d","options":["Yes","No"],"correctAnswer":"No"}
	]`

	questions, err := NewBracketNormalizer().Normalize(raw, models.QuizMixed)
	require.NoError(t, err)
	require.Len(t, questions, 4)

	for _, q := range questions {
		if len(q.Options) == 2 {
			assert.Equal(t, models.TrueFalse, q.Type, q.QuestionText)
		} else {
			assert.Equal(t, models.MultipleChoice, q.Type, q.QuestionText)
		}
	}
}

func TestNormalize_NonMixedAppliesRequestedTypeUniformly(t *testing.T) {
	raw := `[{"questionText":"a","options":["True","False"],"correctAnswer":"True"}]`

	questions, err := NewBracketNormalizer().Normalize(raw, models.QuizMultipleChoice)
	require.NoError(t, err)
	assert.Equal(t, models.MultipleChoice, questions[0].Type)
}

func TestNormalize_EmptyArray(t *testing.T) {
	questions, err := NewBracketNormalizer().Normalize("nothing to see: []", models.QuizMixed)
	require.NoError(t, err)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no brackets", "I cannot help with that."},
		{"reversed brackets", "] oops ["},
		{"malformed json", `[{"questionText": "a", }]`},
		{"not an array of objects", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := NewBracketNormalizer().Normalize(tt.raw, models.QuizMultipleChoice)
			require.Error(t, err)
			assert.Nil(t, questions)

			var upstreamErr *UpstreamError
			require.True(t, errors.As(err, &upstreamErr))
			assert.Equal(t, "parse", upstreamErr.Stage)
			assert.True(t, strings.HasPrefix(err.Error(), "generation parse failed"))
		})
	}
}

func TestResolveType(t *testing.T) {
	assert.Equal(t, models.TrueFalse, ResolveType(models.QuizMixed, 2))
	assert.Equal(t, models.MultipleChoice, ResolveType(models.QuizMixed, 4))
	assert.Equal(t, models.MultipleChoice, ResolveType(models.QuizMixed, 0))
	assert.Equal(t, models.TrueFalse, ResolveType(models.QuizTrueFalse, 4))
	assert.Equal(t, models.MultipleChoice, ResolveType(models.QuizMultipleChoice, 2))
}
