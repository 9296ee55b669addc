package llm

import (
	"context"
	"strings"
)

const FallbackText = "We're currently experiencing technical difficulties. Please try again later."

// Client is the completion facade the rest of the backend talks to.
type Client struct {
	provider  Provider
	tokenizer Tokenizer
	models    Models
}

func NewClient(p Provider, models Models, tok Tokenizer) *Client {
	if tok == nil {
		tok = RuneTokenizer{}
	}
	return &Client{provider: p, tokenizer: tok, models: models}
}

func (c *Client) EstimateTokens(prompt, model string) int {
	return c.tokenizer.Count(prompt, model)
}

func (c *Client) SelectValidModel(requested string) string {
	return c.models.Select(requested)
}

// TrimToFit returns prompt unchanged when it already fits maxTokens.
func (c *Client) TrimToFit(prompt string, maxTokens int, model string) string {
	if maxTokens <= 0 {
		return prompt
	}
	return c.tokenizer.Truncate(prompt, maxTokens, model)
}

// Complete returns the trimmed completion text or a *CompletionError.
func (c *Client) Complete(ctx context.Context, prompt, model string, maxTokens int, temperature float32) (string, error) {
	text, err := c.provider.Complete(ctx, Request{
		Prompt:      prompt,
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", wrapError(err, 0)
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) Fallback(string) string {
	return FallbackText
}
