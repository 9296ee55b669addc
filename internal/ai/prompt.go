package ai

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.txt
var templateFS embed.FS

// PromptRenderer fills the per-quiz-type templates. Placeholders use the
// {name} syntax.
type PromptRenderer struct {
	templates map[QuizType]string
}

func NewPromptRenderer() (*PromptRenderer, error) {
	r := &PromptRenderer{templates: make(map[QuizType]string, len(QuizTypes))}
	for _, qt := range QuizTypes {
		path := "templates/" + strings.ToLower(string(qt)) + ".txt"
		data, err := templateFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load prompt template %s: %w", path, err)
		}
		r.templates[qt] = string(data)
	}
	return r, nil
}

func (r *PromptRenderer) Render(qt QuizType, values map[string]string) (string, error) {
	tmpl, ok := r.templates[qt]
	if !ok {
		return "", fmt.Errorf("no prompt template for quiz type %q", qt)
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl), nil
}
