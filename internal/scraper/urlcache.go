package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/cache"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const urlCachePrefix = "url_quiz_cache:"

// URLCache stores generated payloads keyed by quiz type and source URL.
type URLCache struct {
	kv  cache.Client
	ttl time.Duration
}

func NewURLCache(kv cache.Client) *URLCache {
	return &URLCache{kv: kv, ttl: cache.DefaultTTL}
}

func URLCacheKey(rawURL string, qt ai.QuizType) string {
	sum := sha256.Sum256([]byte(string(qt) + ":" + rawURL))
	return urlCachePrefix + hex.EncodeToString(sum[:])
}

// Get treats an undecodable entry as a miss.
func (c *URLCache) Get(ctx context.Context, rawURL string, qt ai.QuizType) (*QuizPayload, bool) {
	raw, ok := c.kv.Get(ctx, URLCacheKey(rawURL, qt))
	if !ok {
		return nil, false
	}
	var p QuizPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Discarding malformed cached quiz")
		return nil, false
	}
	return &p, true
}

func (c *URLCache) Set(ctx context.Context, rawURL string, qt ai.QuizType, p *QuizPayload) bool {
	data, err := json.Marshal(p)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to encode quiz for cache")
		return false
	}
	return c.kv.SetEx(ctx, URLCacheKey(rawURL, qt), c.ttl, string(data))
}
