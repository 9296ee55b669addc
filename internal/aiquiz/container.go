package aiquiz

import (
	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/scraper"
)

type AIQuizContainer struct {
	Handler *Handler
}

// NewAIQuizContainer builds the AI surface. store may be nil when no database
// is configured.
func NewAIQuizContainer(renderer *ai.PromptRenderer, chat *ai.ChatService, tasks *ai.Tasks, generator *scraper.Generator, store Store) *AIQuizContainer {
	service := NewService(renderer, chat, tasks, generator, store)
	return &AIQuizContainer{Handler: NewHandler(service)}
}
