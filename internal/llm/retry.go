package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// RetryIf selects the errors worth another attempt. Nil means DefaultRetryIf.
	RetryIf func(error) bool
}

// RetryProvider retries failed completions with capped exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = DefaultRetryIf
	}
	return &RetryProvider{inner: p, config: cfg}
}

// DefaultRetryIf retries transient completion failures and never retries a
// cancelled or expired context.
func DefaultRetryIf(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ce *CompletionError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Transient()
}

// Complete returns the last error unchanged once attempts run out.
func (r *RetryProvider) Complete(ctx context.Context, req Request) (string, error) {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     r.config.BaseDelay,
		RandomizationFactor: 0.2,
		Multiplier:          2,
		MaxInterval:         r.config.MaxDelay,
	}

	op := func() (string, error) {
		text, err := r.inner.Complete(ctx, req)
		if err != nil && !r.config.RetryIf(err) {
			return "", backoff.Permanent(err)
		}
		return text, err
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(r.config.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
}
