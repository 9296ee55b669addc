package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/smart-quiz/internal/config"
)

// LoggingProvider records latency and outcome of every completion.
type LoggingProvider struct {
	inner Provider
	name  string
}

func WithLogging(p Provider, name string) Provider {
	return &LoggingProvider{inner: p, name: name}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := l.inner.Complete(ctx, req)

	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"provider":   l.name,
		"model":      req.Model,
		"max_tokens": req.MaxTokens,
		"latency_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		log.WithError(err).Error("Completion request failed")
		return text, err
	}
	log.WithField("response_chars", len(text)).Debug("Completion request succeeded")
	return text, nil
}
