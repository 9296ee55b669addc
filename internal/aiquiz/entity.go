package aiquiz

import "github.com/saulo-duarte/smart-quiz/internal/ai"

type TopicQuizRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	QuizType   string `json:"quiz_type"`
	Model      string `json:"model,omitempty"`
}

// TopicQuizResponse carries either the parsed questions or, when the reply
// could not be parsed, the raw completion text.
type TopicQuizResponse struct {
	Topic         string              `json:"topic"`
	Difficulty    string              `json:"difficulty"`
	QuizType      ai.QuizType         `json:"quiz_type"`
	Questions     []ai.QuestionRecord `json:"questions,omitempty"`
	GeneratedQuiz string              `json:"generated_quiz,omitempty"`
	QuizID        string              `json:"quiz_id,omitempty"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type TagsRequest struct {
	Question string `json:"question"`
}

type GradeRequest struct {
	UserAnswer    string `json:"user_answer"`
	CorrectOption string `json:"correct_option"`
}
