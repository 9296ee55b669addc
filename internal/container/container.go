package container

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/smart-quiz/internal/admin"
	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/aiquiz"
	"github.com/saulo-duarte/smart-quiz/internal/auth"
	"github.com/saulo-duarte/smart-quiz/internal/cache"
	"github.com/saulo-duarte/smart-quiz/internal/config"
	"github.com/saulo-duarte/smart-quiz/internal/llm"
	"github.com/saulo-duarte/smart-quiz/internal/quiz"
	"github.com/saulo-duarte/smart-quiz/internal/router"
	"github.com/saulo-duarte/smart-quiz/internal/scraper"
)

type Container struct {
	Config config.Config
	Cache  cache.Client

	Chat      *ai.ChatService
	Tasks     *ai.Tasks
	Generator *scraper.Generator

	AIQuizContainer *aiquiz.AIQuizContainer
	QuizContainer   *quiz.QuizContainer
	AdminContainer  *admin.AdminContainer
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log := config.WithContext(ctx)

	if cfg.JWTSecret != "" {
		auth.SetSecret(cfg.JWTSecret)
	} else {
		log.Warn("JWT_SECRET is not set, authenticated routes will reject every request")
	}

	c := &Container{Config: cfg}

	if cfg.EnableCaching {
		c.Cache = cache.NewRedis(cfg.RedisURL, config.Log)
	} else {
		c.Cache = cache.NewNoop()
	}

	client, err := llm.NewClientFromConfig(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("completion client: %w", err)
	}
	c.Chat = ai.NewChatService(client, c.Cache)
	c.Tasks = ai.NewTasks(c.Chat)

	renderer, err := ai.NewPromptRenderer()
	if err != nil {
		return nil, fmt.Errorf("prompt templates: %w", err)
	}
	classifier := scraper.NewClassifier(c.Chat, cfg.LLM.ScraperModel)
	c.Generator = scraper.NewGenerator(scraper.NewHTTPFetcher(), c.Chat, classifier, scraper.NewURLCache(c.Cache))

	var (
		store aiquiz.Store
		stats admin.StatsSource
	)
	if cfg.DatabaseDSN != "" {
		if err := config.Connect(ctx, cfg.DatabaseDSN); err != nil {
			return nil, err
		}
		if err := config.DB.AutoMigrate(&quiz.Quiz{}, &quiz.QuizQuestion{}, &quiz.UserAnswer{}); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		c.QuizContainer = quiz.NewQuizContainer(config.DB, c.Tasks)
		store, stats = c.QuizContainer.Service, c.QuizContainer.Service
	} else {
		log.Warn("DATABASE_DSN is not set, quiz persistence is disabled")
	}

	if cfg.EnableAI {
		c.AIQuizContainer = aiquiz.NewAIQuizContainer(renderer, c.Chat, c.Tasks, c.Generator, store)
	}
	c.AdminContainer = admin.NewAdminContainer(c.Cache, c.Chat, stats)

	return c, nil
}

func (c *Container) Router() router.RouterConfig {
	rc := router.RouterConfig{
		AdminHandler: c.AdminContainer.Handler,
		CORSOrigins:  c.Config.CORSOrigins,
		APIKeyHeader: c.Config.APIKeyHeader,
		AdminAPIKey:  c.Config.AdminAPIKey,
	}
	if c.AIQuizContainer != nil {
		rc.AIQuizHandler = c.AIQuizContainer.Handler
	}
	if c.QuizContainer != nil {
		rc.QuizHandler = c.QuizContainer.Handler
	}
	return rc
}

func (c *Container) Close() error {
	return c.Cache.Close()
}
