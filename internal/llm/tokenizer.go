package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const fallbackEncoding = "cl100k_base"

// Tokenizer counts and truncates prompts in model tokens.
type Tokenizer interface {
	Count(text, model string) int
	Truncate(text string, maxTokens int, model string) string
}

type tiktokenTokenizer struct {
	mu    sync.Mutex
	cache map[string]*tiktoken.Tiktoken
}

var loaderOnce sync.Once

// NewTokenizer uses the embedded BPE ranks, so it never reaches the network.
func NewTokenizer() Tokenizer {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	return &tiktokenTokenizer{cache: make(map[string]*tiktoken.Tiktoken)}
}

func (t *tiktokenTokenizer) encoding(model string) *tiktoken.Tiktoken {
	t.mu.Lock()
	defer t.mu.Unlock()

	if enc, ok := t.cache[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			config.Log.WithError(err).Warn("No tokenizer encoding available, estimating by length")
			enc = nil
		}
	}
	t.cache[model] = enc
	return enc
}

func (t *tiktokenTokenizer) Count(text, model string) int {
	enc := t.encoding(model)
	if enc == nil {
		return RuneTokenizer{}.Count(text, model)
	}
	return len(enc.Encode(text, nil, nil))
}

func (t *tiktokenTokenizer) Truncate(text string, maxTokens int, model string) string {
	enc := t.encoding(model)
	if enc == nil {
		return RuneTokenizer{}.Truncate(text, maxTokens, model)
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}

// RuneTokenizer estimates one token per four runes.
type RuneTokenizer struct{}

const runesPerToken = 4

func (RuneTokenizer) Count(text, _ string) int {
	n := len([]rune(text))
	return (n + runesPerToken - 1) / runesPerToken
}

func (RuneTokenizer) Truncate(text string, maxTokens int, _ string) string {
	r := []rune(text)
	limit := maxTokens * runesPerToken
	if len(r) <= limit {
		return text
	}
	return string(r[:limit])
}
