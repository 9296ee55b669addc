package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const (
	maxSnippetChars  = 1600
	minSnippetChars  = 1400
	minGenerateWords = 100
)

type QuizPayload struct {
	Topic          string      `json:"topic"`
	Difficulty     Difficulty  `json:"difficulty"`
	QuizType       ai.QuizType `json:"quiz_type"`
	SourceURL      string      `json:"source_url,omitempty"`
	ScrapedAt      time.Time   `json:"scraped_at"`
	ContentExcerpt string      `json:"content_excerpt"`
	Quiz           string      `json:"quiz"`
}

type Generator struct {
	fetcher    Fetcher
	chat       Completer
	classifier *Classifier
	cache      *URLCache
	now        func() time.Time
}

func NewGenerator(f Fetcher, chat Completer, classifier *Classifier, c *URLCache) *Generator {
	return &Generator{
		fetcher:    f,
		chat:       chat,
		classifier: classifier,
		cache:      c,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GenerateQuizFromURL returns a payload whenever text extraction succeeds;
// a completion failure is reported inside the quiz field.
func (g *Generator) GenerateQuizFromURL(ctx context.Context, rawURL, quizType, model string, useCache bool) (*QuizPayload, error) {
	qt, err := ai.ParseQuizType(quizType)
	if err != nil {
		return nil, err
	}

	log := config.WithContext(ctx).WithFields(logrus.Fields{"url": rawURL, "quiz_type": qt})

	if useCache && g.cache != nil {
		if cached, ok := g.cache.Get(ctx, rawURL, qt); ok {
			log.Info("Returning cached quiz")
			return cached, nil
		}
	}

	page, err := g.fetcher.FetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	text, err := ExtractFromPage(page, rawURL)
	if err != nil {
		return nil, err
	}
	if wordCount(text) < minGenerateWords {
		return nil, apperror.New(apperror.InsufficientContent, "insufficient content extracted from URL")
	}

	var (
		topic      string
		difficulty Difficulty
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		topic = g.classifier.ClassifyTopic(egCtx, text)
		return nil
	})
	eg.Go(func() error {
		difficulty = EstimateDifficulty(text)
		return nil
	})
	_ = eg.Wait()

	snippet := Snippet(text)
	prompt := generationPrompt(qt, topic, difficulty, snippet)

	quiz, err := g.chat.Complete(ctx, prompt, ai.WithModel(model))
	if err != nil {
		log.WithError(err).Error("Quiz completion failed")
		quiz = fmt.Sprintf("Failed to generate quiz. Error: %v", err)
	}

	payload := &QuizPayload{
		Topic:          topic,
		Difficulty:     difficulty,
		QuizType:       qt,
		SourceURL:      rawURL,
		ScrapedAt:      g.now(),
		ContentExcerpt: snippet,
		Quiz:           quiz,
	}

	if useCache && g.cache != nil && !g.cache.Set(ctx, rawURL, qt, payload) {
		log.Warn("Failed to cache quiz")
	}

	log.WithFields(logrus.Fields{"topic": topic, "difficulty": difficulty}).Info("Generated quiz from URL")
	return payload, nil
}

// Snippet cuts text to at most 1600 characters, ending on the last sentence
// terminator that keeps more than 1400.
func Snippet(text string) string {
	r := []rune(text)
	for end := min(len(r), maxSnippetChars); end > minSnippetChars; end-- {
		if end >= len(r) {
			return text
		}
		if c := r[end]; c == '.' || c == '!' || c == '?' {
			return string(r[:end+1])
		}
	}
	return string(r[:min(len(r), maxSnippetChars)])
}

func generationPrompt(qt ai.QuizType, topic string, d Difficulty, snippet string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s quiz based on the following content.\n\n", qt)
	fmt.Fprintf(&b, "Topic: %s\nDifficulty: %s\n\n", topic, d)
	fmt.Fprintf(&b, "Content:\n%s\n\n", snippet)
	b.WriteString("Instructions:\n")
	b.WriteString("- For MCQ: Create 5 multiple choice questions with 4 options each\n")
	b.WriteString("- For TF: Create 10 true/false questions\n")
	b.WriteString("- For IMAGE: Create 5 questions that would work well with images/diagrams\n\n")
	b.WriteString("Format the output as a structured quiz with clear questions and answers.")
	return b.String()
}
