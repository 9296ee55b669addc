package quiz

import (
	"time"

	"github.com/google/uuid"
)

type QuizWithQuestionsDTO struct {
	Quiz      *Quiz           `json:"quiz"`
	Questions []*QuizQuestion `json:"questions"`
}

type AnswerInput struct {
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedAnswer string    `json:"selected_answer"`
}

type AnswerResult struct {
	ID             uuid.UUID `json:"id"`
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	Feedback       string    `json:"feedback,omitempty"`
}

type Summary struct {
	Total           int     `json:"total"`
	Correct         int     `json:"correct"`
	ScorePercentage float64 `json:"score_percentage"`
}

type SubmitResult struct {
	Summary Summary        `json:"summary"`
	Answers []AnswerResult `json:"answers"`
}

// GeneratedQuiz is what the generation endpoints hand over for persistence.
type GeneratedQuiz struct {
	Title      string
	Topic      string
	Difficulty string
	QuizType   string
	SourceURL  string
	ScrapedAt  time.Time
}

type Counts struct {
	Quizzes   int64 `json:"total_quizzes"`
	Completed int64 `json:"completed_quizzes"`
	Questions int64 `json:"total_questions"`
	Answers   int64 `json:"total_answers"`
}
