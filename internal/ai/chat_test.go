package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/cache"
	"github.com/saulo-duarte/smart-quiz/internal/llm"
)

func TestCacheKey(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		p := "Generate a MCQ quiz about photosynthesis"
		assert.Equal(t, ai.CacheKey(p), ai.CacheKey(strings.Clone(p)))
	})

	t.Run("DistinctPrompts", func(t *testing.T) {
		assert.NotEqual(t, ai.CacheKey("prompt a"), ai.CacheKey("prompt b"))
		assert.NotEqual(t, ai.CacheKey("prompt"), ai.CacheKey("prompt "))
	})

	t.Run("Scoped", func(t *testing.T) {
		key := ai.CacheKey("x")
		assert.True(t, strings.HasPrefix(key, "quiz_cache:"))
		assert.Len(t, key, len("quiz_cache:")+64)
	})
}

func TestChatWithCache_OneCallPerPrompt(t *testing.T) {
	ctx := context.Background()
	mock := llm.NewMockProvider(llm.MockResponse{Text: "first answer"}, llm.MockResponse{Text: "second answer"})
	kv := newMapCache()
	chat := ai.NewChatService(newClient(mock), kv)

	first := chat.ChatWithCache(ctx, "same prompt", ai.WithModel("gpt-4"), ai.WithMaxTokens(50))
	second := chat.ChatWithCache(ctx, "same prompt", ai.WithModel("gpt-4"), ai.WithMaxTokens(50))

	assert.Equal(t, "first answer", first)
	assert.Equal(t, "first answer", second)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, ai.CacheTTL, kv.ttl[ai.CacheKey("same prompt")])
}

func TestChatWithCache_Defaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	chat := ai.NewChatService(newClient(mock), newMapCache())

	chat.ChatWithCache(context.Background(), "p", ai.WithModel("unknown-model"))

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.DefaultModel, calls[0].Model)
	assert.Equal(t, ai.DefaultMaxTokens, calls[0].MaxTokens)
	assert.InDelta(t, ai.DefaultTemperature, calls[0].Temperature, 1e-6)
}

func TestChatWithCache_TrimsBeforeKeying(t *testing.T) {
	ctx := context.Background()
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	kv := newMapCache()
	chat := ai.NewChatService(newClient(mock), kv)

	long := strings.Repeat("a", ai.MaxPromptTokens*4+100)
	chat.ChatWithCache(ctx, long)

	trimmed := long[:ai.MaxPromptTokens*4]
	assert.Equal(t, trimmed, mock.Calls()[0].Prompt)
	_, ok := kv.Get(ctx, ai.CacheKey(trimmed))
	assert.True(t, ok)
}

func TestChatWithCache_CacheUnavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("LiveCompletion", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Text: "live"}, llm.MockResponse{Text: "live again"})
		chat := ai.NewChatService(newClient(mock), brokenCache{})

		assert.Equal(t, "live", chat.ChatWithCache(ctx, "p"))
		assert.Equal(t, "live again", chat.ChatWithCache(ctx, "p"))
		assert.Equal(t, 2, mock.CallCount(), "a broken cache must not skip the call")
	})

	t.Run("CompletionAlsoFails", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("upstream down")})
		chat := ai.NewChatService(newClient(mock), brokenCache{})

		assert.Equal(t, llm.FallbackText, chat.ChatWithCache(ctx, "p"))
	})
}

func TestChatComplete_SurfacesError(t *testing.T) {
	ctx := context.Background()
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("quota exceeded")})
	kv := newMapCache()
	chat := ai.NewChatService(newClient(mock), kv)

	_, err := chat.Complete(ctx, "p")

	var ce *llm.CompletionError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Message, "quota exceeded")
	_, cached := kv.Get(ctx, ai.CacheKey("p"))
	assert.False(t, cached, "failures are not cached")
}

func TestHealth(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		kv    cache.Client
		resp  llm.MockResponse
		cache ai.HealthStatus
		llm   ai.HealthStatus
		want  ai.HealthStatus
	}{
		{"AllHealthy", newMapCache(), llm.MockResponse{Text: "OK"}, ai.StatusHealthy, ai.StatusHealthy, ai.StatusHealthy},
		{"UnexpectedReply", newMapCache(), llm.MockResponse{Text: "hello"}, ai.StatusHealthy, ai.StatusDegraded, ai.StatusDegraded},
		{"CompletionDown", newMapCache(), llm.MockResponse{Err: errors.New("down")}, ai.StatusHealthy, ai.StatusUnhealthy, ai.StatusUnhealthy},
		{"CacheDown", brokenCache{}, llm.MockResponse{Text: "ok"}, ai.StatusUnhealthy, ai.StatusHealthy, ai.StatusUnhealthy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tc.resp)
			chat := ai.NewChatService(newClient(mock), tc.kv)

			r := chat.Health(ctx)

			assert.Equal(t, tc.cache, r.Cache.Status)
			assert.Equal(t, tc.llm, r.Completion.Status)
			assert.Equal(t, tc.want, r.Overall)
			assert.Equal(t, 10, mock.Calls()[0].MaxTokens)
		})
	}
}
