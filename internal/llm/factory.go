package llm

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/smart-quiz/internal/config"
)

// NewProvider builds the configured vendor provider wrapped in retry and
// logging decorators, retry innermost so each attempt is not logged twice.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "openai", "":
		p, err = NewOpenAIProvider(cfg.APIKey, cfg.BaseURL)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.APIKey)
	case "anthropic":
		p, err = NewAnthropicProvider(cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	p = WithRetry(p, RetryConfig{
		MaxAttempts: cfg.Retry.Attempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	})
	return WithLogging(p, cfg.Provider), nil
}

// NewClientFromConfig wires provider, whitelist and tokenizer.
func NewClientFromConfig(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	p, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewClient(p, NewModels(cfg.DefaultModel, cfg.AllowedModels), NewTokenizer()), nil
}
