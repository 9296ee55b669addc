package admin

import (
	"context"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/cache"
	"github.com/saulo-duarte/smart-quiz/internal/config"
	"github.com/saulo-duarte/smart-quiz/internal/quiz"
)

type HealthChecker interface {
	Health(ctx context.Context) ai.HealthReport
}

type StatsSource interface {
	Counts(ctx context.Context) (quiz.Counts, error)
}

type Service interface {
	Stats(ctx context.Context) (quiz.Counts, error)
	ClearCache(ctx context.Context) error
	CacheStats(ctx context.Context) cache.Stats
	AIHealth(ctx context.Context) ai.HealthReport
}

type service struct {
	cache  cache.Client
	health HealthChecker
	stats  StatsSource
}

// NewService builds the admin operations. stats may be nil when persistence
// is disabled.
func NewService(kv cache.Client, health HealthChecker, stats StatsSource) Service {
	return &service{cache: kv, health: health, stats: stats}
}

func (s *service) Stats(ctx context.Context) (quiz.Counts, error) {
	if s.stats == nil {
		return quiz.Counts{}, apperror.New(apperror.NotFound, "statistics require a database")
	}
	return s.stats.Counts(ctx)
}

func (s *service) ClearCache(ctx context.Context) error {
	if !s.cache.Flush(ctx) {
		return apperror.New(apperror.Internal, "failed to clear cache")
	}
	config.WithContext(ctx).Info("Cache cleared")
	return nil
}

func (s *service) CacheStats(ctx context.Context) cache.Stats {
	return s.cache.Stats(ctx)
}

func (s *service) AIHealth(ctx context.Context) ai.HealthReport {
	return s.health.Health(ctx)
}
