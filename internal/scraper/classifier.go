package scraper

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const (
	DefaultTopic = "General Knowledge"

	classifySampleChars = 500
	maxTopicChars       = 50
	minClassifyChars    = 50
)

var rejectedLeadWords = map[string]bool{"i": true, "the": true, "this": true, "here": true}

// Completer is the error-returning half of the cached completion path.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts ...ai.ChatOption) (string, error)
}

type Classifier struct {
	chat  Completer
	model string
}

func NewClassifier(chat Completer, model string) *Classifier {
	return &Classifier{chat: chat, model: model}
}

// ClassifyTopic never fails; anything unusable becomes DefaultTopic.
func (c *Classifier) ClassifyTopic(ctx context.Context, text string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minClassifyChars {
		return DefaultTopic
	}

	prompt := "Classify this text into a single topic (e.g. History, Science, Technology, etc). " +
		"Return only the topic name:\n\n" + truncateRunes(text, classifySampleChars)

	resp, err := c.chat.Complete(ctx, prompt,
		ai.WithModel(c.model),
		ai.WithMaxTokens(50),
		ai.WithTemperature(0.3),
	)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Topic classification failed")
		return DefaultTopic
	}

	topic := strings.TrimSpace(resp)
	if topic == "" || len([]rune(topic)) > maxTopicChars || rejectedLeadWords[leadWord(topic)] {
		return DefaultTopic
	}
	return topic
}

// leadWord is the first run of letters, lower-cased, so "I'm" gives "i".
// Matching whole words, not a raw prefix, keeps topics like "Immunology".
func leadWord(s string) string {
	s = strings.ToLower(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
