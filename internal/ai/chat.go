// Package ai holds the cached completion path and the small completion-backed
// tasks built on it: explanations, tags, grading feedback and confidence.
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/smart-quiz/internal/cache"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const (
	cacheKeyPrefix = "quiz_cache:"

	MaxPromptTokens    = 4000
	DefaultMaxTokens   = 700
	DefaultTemperature = 0.7
	CacheTTL           = cache.DefaultTTL
)

// Completer is the subset of *llm.Client the chat service needs.
type Completer interface {
	SelectValidModel(requested string) string
	TrimToFit(prompt string, maxTokens int, model string) string
	Complete(ctx context.Context, prompt, model string, maxTokens int, temperature float32) (string, error)
	Fallback(prompt string) string
}

type ChatService struct {
	llm   Completer
	cache cache.Client
}

func NewChatService(c Completer, kv cache.Client) *ChatService {
	if kv == nil {
		kv = cache.NewNoop()
	}
	return &ChatService{llm: c, cache: kv}
}

// CacheKey is stable for byte-identical prompts.
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

type chatOptions struct {
	model       string
	maxTokens   int
	temperature float32
}

type ChatOption func(*chatOptions)

func WithModel(model string) ChatOption {
	return func(o *chatOptions) { o.model = model }
}

func WithMaxTokens(n int) ChatOption {
	return func(o *chatOptions) {
		if n > 0 {
			o.maxTokens = n
		}
	}
}

func WithTemperature(t float32) ChatOption {
	return func(o *chatOptions) { o.temperature = t }
}

func resolveOptions(opts []ChatOption) chatOptions {
	o := chatOptions{maxTokens: DefaultMaxTokens, temperature: DefaultTemperature}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ChatWithCache never fails: a completion error is logged and answered with
// the fallback text.
func (s *ChatService) ChatWithCache(ctx context.Context, prompt string, opts ...ChatOption) string {
	text, err := s.Complete(ctx, prompt, opts...)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Completion failed, serving fallback response")
		return s.llm.Fallback(prompt)
	}
	return text
}

// Complete follows the same cache path as ChatWithCache but returns the
// completion error to the caller.
func (s *ChatService) Complete(ctx context.Context, prompt string, opts ...ChatOption) (string, error) {
	o := resolveOptions(opts)
	model := s.llm.SelectValidModel(o.model)
	prompt = s.llm.TrimToFit(prompt, MaxPromptTokens, model)
	key := CacheKey(prompt)

	log := config.WithContext(ctx).WithFields(logrus.Fields{"model": model, "cache_key": key})

	if cached, ok := s.cache.Get(ctx, key); ok {
		log.Debug("Completion served from cache")
		return cached, nil
	}

	text, err := s.llm.Complete(ctx, prompt, model, o.maxTokens, o.temperature)
	if err != nil {
		return "", err
	}

	if s.cache.SetEx(ctx, key, CacheTTL, text) {
		log.Debug("Completion stored in cache")
	}
	return text, nil
}

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

type ComponentHealth struct {
	Status HealthStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

type HealthReport struct {
	Overall    HealthStatus    `json:"overall"`
	Cache      ComponentHealth `json:"cache"`
	Completion ComponentHealth `json:"completion"`
	CheckedAt  time.Time       `json:"checked_at"`
}

// Health probes the cache and issues a live completion that skips the cache.
func (s *ChatService) Health(ctx context.Context) HealthReport {
	r := HealthReport{CheckedAt: time.Now().UTC()}

	if s.cache.Ping(ctx) {
		r.Cache.Status = StatusHealthy
	} else {
		r.Cache = ComponentHealth{Status: StatusUnhealthy, Error: "cache connection failed"}
	}

	model := s.llm.SelectValidModel("")
	text, err := s.llm.Complete(ctx, "Say 'OK'", model, 10, DefaultTemperature)
	switch {
	case err != nil:
		r.Completion = ComponentHealth{Status: StatusUnhealthy, Error: err.Error()}
	case strings.Contains(strings.ToUpper(text), "OK"):
		r.Completion.Status = StatusHealthy
	default:
		r.Completion.Status = StatusDegraded
	}

	switch {
	case r.Cache.Status == StatusHealthy && r.Completion.Status == StatusHealthy:
		r.Overall = StatusHealthy
	case r.Cache.Status == StatusUnhealthy || r.Completion.Status == StatusUnhealthy:
		r.Overall = StatusUnhealthy
	default:
		r.Overall = StatusDegraded
	}
	return r
}
