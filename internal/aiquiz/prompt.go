package aiquiz

import (
	"strings"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
)

const defaultDifficulty = "medium"

// normalize fills request defaults. Unknown quiz types fall back to MCQ here;
// the generation core itself rejects them.
func normalize(req TopicQuizRequest) (TopicQuizRequest, ai.QuizType) {
	req.Topic = strings.TrimSpace(req.Topic)
	req.Difficulty = strings.TrimSpace(req.Difficulty)
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	qt, err := ai.ParseQuizType(req.QuizType)
	if err != nil {
		qt = ai.QuizMCQ
	}
	req.QuizType = string(qt)
	return req, qt
}

func topicVars(req TopicQuizRequest) map[string]string {
	return map[string]string{
		"topic":      req.Topic,
		"difficulty": req.Difficulty,
	}
}
