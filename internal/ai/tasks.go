package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const (
	DefaultConfidence   = 0.8
	FeedbackUnavailable = "Feedback unavailable."
)

var numberPattern = regexp.MustCompile(`\d+\.?\d*`)

// Chatter is the cached completion surface the tasks depend on.
type Chatter interface {
	ChatWithCache(ctx context.Context, prompt string, opts ...ChatOption) string
	Complete(ctx context.Context, prompt string, opts ...ChatOption) (string, error)
}

type Tasks struct {
	chat Chatter
}

func NewTasks(chat Chatter) *Tasks {
	return &Tasks{chat: chat}
}

func (t *Tasks) GenerateExplanation(ctx context.Context, quizText string) string {
	prompt := "Explain each correct answer in the following quiz in 1-2 beginner-friendly sentences:\n\n" + quizText
	return t.chat.ChatWithCache(ctx, prompt)
}

// GenerateTags returns an empty slice when the completion fails.
func (t *Tasks) GenerateTags(ctx context.Context, question string) []string {
	prompt := "Give 3 relevant tags (comma-separated) for this question:\n" + question
	resp, err := t.chat.Complete(ctx, prompt)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Tag generation failed")
		return []string{}
	}

	tags := []string{}
	for _, part := range strings.Split(resp, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type Grade struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
}

// GradeAnswer decides correctness locally with a literal, case-insensitive
// comparison. Only the feedback text comes from the model.
func (t *Tasks) GradeAnswer(ctx context.Context, userAnswer, correctOption string) Grade {
	g := Grade{
		IsCorrect: strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(correctOption)),
	}

	prompt := fmt.Sprintf(
		"The correct answer is %s. The user selected %s. Is it correct? Justify with explanation.",
		correctOption, userAnswer,
	)
	feedback, err := t.chat.Complete(ctx, prompt)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Grading feedback failed")
		feedback = FeedbackUnavailable
	}
	g.Feedback = feedback
	return g
}

// EstimateConfidence reads the first number of the reply, clamped to [0, 1].
func (t *Tasks) EstimateConfidence(ctx context.Context, block string) float64 {
	prompt := "Rate the confidence in this quiz block on a scale from 0.0 to 1.0:\n" + block
	resp, err := t.chat.Complete(ctx, prompt)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Confidence estimation failed")
		return DefaultConfidence
	}
	return parseConfidence(resp)
}

func parseConfidence(resp string) float64 {
	m := numberPattern.FindString(resp)
	if m == "" {
		return DefaultConfidence
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return DefaultConfidence
	}
	return min(max(v, 0), 1)
}
