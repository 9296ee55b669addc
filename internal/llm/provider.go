// Package llm talks to the chat-completion service: vendor providers, the
// token budget helpers, the model whitelist and the retry/logging decorators.
package llm

import "context"

// Provider issues one single-turn completion.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type Request struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float32
}
