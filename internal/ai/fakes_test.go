package ai_test

import (
	"context"
	"sync"
	"time"

	"github.com/saulo-duarte/smart-quiz/internal/cache"
	"github.com/saulo-duarte/smart-quiz/internal/llm"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) SetEx(_ context.Context, key string, ttl time.Duration, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttl[key] = ttl
	return true
}

func (c *mapCache) Flush(context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string]string{}
	return true
}

func (c *mapCache) Stats(context.Context) cache.Stats { return cache.Stats{Connected: true} }
func (c *mapCache) Ping(context.Context) bool { return true }
func (c *mapCache) Close() error { return nil }

// brokenCache fails every operation the way an unreachable store does.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool) { return "", false }

func (brokenCache) SetEx(context.Context, string, time.Duration, string) bool { return false }

func (brokenCache) Flush(context.Context) bool { return false }

func (brokenCache) Stats(context.Context) cache.Stats { return cache.Stats{Error: "down"} }

func (brokenCache) Ping(context.Context) bool { return false }

func (brokenCache) Close() error { return nil }

func newClient(mock *llm.MockProvider) *llm.Client {
	return llm.NewClient(mock, llm.NewModels("", nil), llm.RuneTokenizer{})
}
