package scraper_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/cache"
	"github.com/saulo-duarte/smart-quiz/internal/llm"
	"github.com/saulo-duarte/smart-quiz/internal/scraper"
)

const quizJSON = `[{"question":"What do plants release?","options":["Oxygen","Helium","Neon","Argon"],"answer":"Oxygen"}]`

type pipeline struct {
	gen     *scraper.Generator
	fetcher *countingFetcher
	mock    *llm.MockProvider
	urls    *scraper.URLCache
	redis   *miniredis.Miniredis
}

func newPipeline(t *testing.T, page string, quiz llm.MockResponse) *pipeline {
	t.Helper()
	mr := miniredis.RunT(t)
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	kv := cache.NewRedis("redis://"+mr.Addr(), quiet)
	t.Cleanup(func() { _ = kv.Close() })

	mock := llm.NewMockProvider()
	mock.Handler = func(req llm.Request) (string, error) {
		if strings.HasPrefix(req.Prompt, "Classify") {
			return "Biology", nil
		}
		return quiz.Text, quiz.Err
	}
	chat := ai.NewChatService(llm.NewClient(mock, llm.NewModels("", nil), llm.RuneTokenizer{}), kv)
	fetcher := &countingFetcher{page: page}
	urls := scraper.NewURLCache(kv)

	return &pipeline{
		gen:     scraper.NewGenerator(fetcher, chat, scraper.NewClassifier(chat, ""), urls),
		fetcher: fetcher,
		mock:    mock,
		urls:    urls,
		redis:   mr,
	}
}

const pageURL = "https://example.com/plants"

func TestGenerateQuizFromURL(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsUnknownQuizTypeBeforeIO", func(t *testing.T) {
		p := newPipeline(t, articleHTML(300), llm.MockResponse{Text: quizJSON})

		_, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "ESSAY", "", true)

		assert.Equal(t, apperror.InvalidInput, apperror.KindOf(err))
		assert.Zero(t, p.fetcher.calls.Load())
		assert.Zero(t, p.mock.CallCount())
	})

	t.Run("FullPipeline", func(t *testing.T) {
		p := newPipeline(t, articleHTML(300), llm.MockResponse{Text: quizJSON})

		got, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "mcq", "gpt-4", true)
		require.NoError(t, err)

		assert.Equal(t, "Biology", got.Topic)
		assert.Contains(t, []scraper.Difficulty{scraper.Easy, scraper.Medium, scraper.Hard}, got.Difficulty)
		assert.Equal(t, ai.QuizMCQ, got.QuizType)
		assert.Equal(t, pageURL, got.SourceURL)
		assert.Equal(t, quizJSON, got.Quiz)
		assert.NotEmpty(t, got.ContentExcerpt)
		assert.LessOrEqual(t, len([]rune(got.ContentExcerpt)), 1600)
		assert.WithinDuration(t, time.Now().UTC(), got.ScrapedAt, time.Minute)
		assert.Equal(t, int32(1), p.fetcher.calls.Load())

		var quizPrompt string
		for _, c := range p.mock.Calls() {
			if strings.HasPrefix(c.Prompt, "Generate a MCQ quiz") {
				quizPrompt = c.Prompt
				assert.Equal(t, "gpt-4", c.Model)
			}
		}
		require.NotEmpty(t, quizPrompt)
		assert.Contains(t, quizPrompt, "Topic: Biology")
		assert.Contains(t, quizPrompt, "- For TF: Create 10 true/false questions")

		assert.True(t, p.redis.Exists(scraper.URLCacheKey(pageURL, ai.QuizMCQ)))
	})

	t.Run("CacheHitSkipsPipeline", func(t *testing.T) {
		p := newPipeline(t, articleHTML(300), llm.MockResponse{Text: quizJSON})
		cached := &scraper.QuizPayload{Topic: "Cached", QuizType: ai.QuizTF, Quiz: "cached quiz"}
		require.True(t, p.urls.Set(ctx, pageURL, ai.QuizTF, cached))

		got, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "TF", "", true)
		require.NoError(t, err)
		assert.Equal(t, "Cached", got.Topic)
		assert.Zero(t, p.fetcher.calls.Load())
	})

	t.Run("CacheBypass", func(t *testing.T) {
		p := newPipeline(t, articleHTML(300), llm.MockResponse{Text: quizJSON})
		require.True(t, p.urls.Set(ctx, pageURL, ai.QuizMCQ, &scraper.QuizPayload{Topic: "Stale"}))

		got, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "MCQ", "", false)
		require.NoError(t, err)
		assert.Equal(t, "Biology", got.Topic)
		assert.Equal(t, int32(1), p.fetcher.calls.Load())
	})

	t.Run("MalformedCacheEntryIsAMiss", func(t *testing.T) {
		p := newPipeline(t, articleHTML(300), llm.MockResponse{Text: quizJSON})
		require.NoError(t, p.redis.Set(scraper.URLCacheKey(pageURL, ai.QuizMCQ), "{not json"))

		got, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "MCQ", "", true)
		require.NoError(t, err)
		assert.Equal(t, "Biology", got.Topic)
	})

	t.Run("CompletionFailureIsEmbedded", func(t *testing.T) {
		p := newPipeline(t, articleHTML(300), llm.MockResponse{Err: errors.New("quota exceeded")})

		got, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "IMAGE", "", true)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.Quiz, "Failed to generate quiz. Error: "))
		assert.Contains(t, got.Quiz, "quota exceeded")
	})

	t.Run("FetchFailurePropagates", func(t *testing.T) {
		p := newPipeline(t, "", llm.MockResponse{Text: quizJSON})
		p.fetcher.err = apperror.New(apperror.FetchFailed, "boom")

		_, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "MCQ", "", true)
		assert.Equal(t, apperror.FetchFailed, apperror.KindOf(err))
	})

	t.Run("BelowGenerationFloor", func(t *testing.T) {
		p := newPipeline(t, articleHTML(70), llm.MockResponse{Text: quizJSON})

		_, err := p.gen.GenerateQuizFromURL(ctx, pageURL, "MCQ", "", true)
		assert.Equal(t, apperror.InsufficientContent, apperror.KindOf(err))
		assert.Zero(t, p.mock.CallCount())
	})
}

func TestURLCacheKey(t *testing.T) {
	assert.Equal(t, scraper.URLCacheKey(pageURL, ai.QuizMCQ), scraper.URLCacheKey(pageURL, ai.QuizMCQ))
	assert.NotEqual(t, scraper.URLCacheKey(pageURL, ai.QuizMCQ), scraper.URLCacheKey(pageURL, ai.QuizTF))
	assert.True(t, strings.HasPrefix(scraper.URLCacheKey(pageURL, ai.QuizMCQ), "url_quiz_cache:"))
}

func TestSnippet(t *testing.T) {
	t.Run("EndsAtSentenceBoundary", func(t *testing.T) {
		text := []rune(strings.Repeat("a", 1700))
		text[1500] = '.'
		got := scraper.Snippet(string(text))
		assert.Len(t, got, 1501)
		assert.True(t, strings.HasSuffix(got, "."))
	})

	t.Run("NoTerminatorInWindow", func(t *testing.T) {
		text := []rune(strings.Repeat("a", 1700))
		text[1300] = '.'
		assert.Len(t, scraper.Snippet(string(text)), 1600)
	})

	t.Run("ShortTextKeptWhole", func(t *testing.T) {
		var b strings.Builder
		for i := 0; b.Len() < 1450; i++ {
			b.WriteString(sentence(i) + " ")
		}
		text := strings.TrimSpace(b.String())
		assert.Equal(t, text, scraper.Snippet(text))
	})
}
