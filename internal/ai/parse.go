package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

// QuestionRecord is one decoded question. Fields beyond question, options and
// answer are kept as the model produced them.
type QuestionRecord map[string]any

func (q QuestionRecord) Question() string { return q.str("question") }

func (q QuestionRecord) Answer() string { return q.str("answer") }

func (q QuestionRecord) Explanation() string { return q.str("explanation") }

func (q QuestionRecord) str(key string) string {
	s, _ := q[key].(string)
	return s
}

func (q QuestionRecord) Options() []string {
	raw, _ := q["options"].([]any)
	out := make([]string, 0, len(raw))
	for _, o := range raw {
		out = append(out, fmt.Sprint(o))
	}
	return out
}

// Envelope is the chat-completion response shape carrying the text in
// choices[0].message.content.
type Envelope struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e Envelope) content() string {
	if len(e.Choices) == 0 {
		return ""
	}
	return e.Choices[0].Message.Content
}

func placeholderQuestion() QuestionRecord {
	return QuestionRecord{
		"question": "Generated quiz could not be parsed properly",
		"options":  []any{"Option A", "Option B", "Option C", "Option D"},
		"answer":   "Option A",
	}
}

// ParseQuizResponse decodes a completion into questions. Text that is not
// JSON yields a single placeholder question; JSON of the wrong shape is a
// ParseError.
func ParseQuizResponse(raw any, qt QuizType) ([]QuestionRecord, error) {
	content, err := responseContent(raw)
	if err != nil {
		return nil, err
	}
	content = stripCodeFence(content)
	if content == "" {
		return nil, apperror.New(apperror.ParseError, "error parsing AI response: missing content in response")
	}

	var decoded any
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		config.Log.WithError(err).Warn("Quiz response is not valid JSON, returning placeholder question")
		return []QuestionRecord{placeholderQuestion()}, nil
	}

	items, ok := decoded.([]any)
	if !ok {
		return nil, apperror.New(apperror.ParseError, "error parsing AI response: expected list of questions")
	}

	questions := make([]QuestionRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, apperror.Newf(apperror.ParseError, "error parsing AI response: question %d is not an object", i)
		}
		for _, field := range []string{"question", "options", "answer"} {
			if _, ok := obj[field]; !ok {
				return nil, apperror.Newf(apperror.ParseError, "error parsing AI response: malformed question %d: missing %q", i, field)
			}
		}
		questions = append(questions, QuestionRecord(obj))
	}

	config.Log.WithField("quiz_type", qt).Infof("Parsed %d questions", len(questions))
	return questions, nil
}

func responseContent(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", apperror.New(apperror.ParseError, "error parsing AI response: empty response")
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case Envelope:
		return v.content(), nil
	case *Envelope:
		if v == nil {
			return "", apperror.New(apperror.ParseError, "error parsing AI response: empty response")
		}
		return v.content(), nil
	case map[string]any:
		return envelopeContent(v), nil
	default:
		return "", apperror.Newf(apperror.ParseError, "error parsing AI response: unsupported response type %T", raw)
	}
}

func envelopeContent(m map[string]any) string {
	choices, _ := m["choices"].([]any)
	if len(choices) == 0 {
		return ""
	}
	first, _ := choices[0].(map[string]any)
	msg, _ := first["message"].(map[string]any)
	s, _ := msg["content"].(string)
	return s
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
