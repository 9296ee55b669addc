package quiz

import "gorm.io/gorm"

type QuizContainer struct {
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, grader Grader) *QuizContainer {
	service := NewService(NewRepository(db), grader)
	return &QuizContainer{
		Service: service,
		Handler: NewHandler(service),
	}
}
