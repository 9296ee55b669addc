package ai

import (
	"strings"

	"github.com/saulo-duarte/smart-quiz/internal/apperror"
)

type QuizType string

const (
	QuizMCQ   QuizType = "MCQ"
	QuizTF    QuizType = "TF"
	QuizImage QuizType = "IMAGE"
)

var QuizTypes = []QuizType{QuizMCQ, QuizTF, QuizImage}

// ParseQuizType is case-insensitive and returns InvalidInput for unknown types.
func ParseQuizType(s string) (QuizType, error) {
	qt := QuizType(strings.ToUpper(strings.TrimSpace(s)))
	if qt.Valid() {
		return qt, nil
	}
	return "", apperror.Newf(apperror.InvalidInput, "invalid quiz type %q: must be one of MCQ, TF, IMAGE", s)
}

func (q QuizType) Valid() bool {
	switch q {
	case QuizMCQ, QuizTF, QuizImage:
		return true
	}
	return false
}
