package ai_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
)

const validQuiz = `[
  {"question": "What is H2O?", "options": ["Water", "Salt", "Gold", "Air"], "answer": "Water", "explanation": "Two hydrogens, one oxygen."},
  {"question": "Is the sun a star?", "options": ["True", "False"], "answer": "True"}
]`

func TestParseQuizResponse(t *testing.T) {
	t.Run("RawString", func(t *testing.T) {
		qs, err := ai.ParseQuizResponse(validQuiz, ai.QuizMCQ)
		require.NoError(t, err)
		require.Len(t, qs, 2)
		assert.Equal(t, "What is H2O?", qs[0].Question())
		assert.Equal(t, []string{"Water", "Salt", "Gold", "Air"}, qs[0].Options())
		assert.Equal(t, "Water", qs[0].Answer())
		assert.Equal(t, "Two hydrogens, one oxygen.", qs[0].Explanation())
	})

	t.Run("CodeFence", func(t *testing.T) {
		qs, err := ai.ParseQuizResponse("```json\n"+validQuiz+"\n```", ai.QuizMCQ)
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("MapEnvelope", func(t *testing.T) {
		env := map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": validQuiz}}},
		}
		qs, err := ai.ParseQuizResponse(env, ai.QuizTF)
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("StructEnvelope", func(t *testing.T) {
		var env ai.Envelope
		body, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": validQuiz}}},
		})
		require.NoError(t, json.Unmarshal(body, &env))
		qs, err := ai.ParseQuizResponse(env, ai.QuizTF)
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("NonJSONYieldsPlaceholder", func(t *testing.T) {
		qs, err := ai.ParseQuizResponse("Here is your quiz: 1. What is...", ai.QuizMCQ)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "Generated quiz could not be parsed properly", qs[0].Question())
		assert.Equal(t, []string{"Option A", "Option B", "Option C", "Option D"}, qs[0].Options())
		assert.Equal(t, "Option A", qs[0].Answer())
	})

	errCases := []struct {
		name   string
		raw    any
		reason string
	}{
		{"Empty", "   ", "missing content"},
		{"Nil", nil, "empty response"},
		{"EmptyEnvelope", map[string]any{}, "missing content"},
		{"NotAList", `{"question": "x"}`, "expected list of questions"},
		{"MissingField", `[{"question": "x", "options": []}]`, "missing \"answer\""},
		{"NotAnObject", `["just a string"]`, "not an object"},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ai.ParseQuizResponse(tc.raw, ai.QuizMCQ)
			require.Error(t, err)
			assert.Equal(t, apperror.ParseError, apperror.KindOf(err))
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}
