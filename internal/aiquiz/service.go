package aiquiz

import (
	"context"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/config"
	"github.com/saulo-duarte/smart-quiz/internal/quiz"
	"github.com/saulo-duarte/smart-quiz/internal/scraper"
)

type Renderer interface {
	Render(qt ai.QuizType, values map[string]string) (string, error)
}

type URLGenerator interface {
	GenerateQuizFromURL(ctx context.Context, rawURL, quizType, model string, useCache bool) (*scraper.QuizPayload, error)
}

type TaskRunner interface {
	GenerateExplanation(ctx context.Context, quizText string) string
	GenerateTags(ctx context.Context, question string) []string
	GradeAnswer(ctx context.Context, userAnswer, correctOption string) ai.Grade
	EstimateConfidence(ctx context.Context, block string) float64
}

// Store persists a generated quiz for a user.
type Store interface {
	SaveGenerated(ctx context.Context, userID string, meta quiz.GeneratedQuiz, records []ai.QuestionRecord) (*quiz.Quiz, error)
}

type Service interface {
	GenerateFromTopic(ctx context.Context, req TopicQuizRequest) (*TopicQuizResponse, error)
	GenerateAndSave(ctx context.Context, userID string, req TopicQuizRequest) (*TopicQuizResponse, error)
	GenerateFromURL(ctx context.Context, rawURL, quizType, model string, useCache bool) (*scraper.QuizPayload, error)
	Explain(ctx context.Context, text string) string
	Confidence(ctx context.Context, text string) float64
	Tags(ctx context.Context, question string) []string
	Grade(ctx context.Context, req GradeRequest) ai.Grade
}

type service struct {
	renderer  Renderer
	chat      ai.Chatter
	tasks     TaskRunner
	generator URLGenerator
	store     Store
}

// NewService wires the AI surface. store may be nil, in which case generated
// quizzes cannot be saved.
func NewService(renderer Renderer, chat ai.Chatter, tasks TaskRunner, generator URLGenerator, store Store) Service {
	return &service{
		renderer:  renderer,
		chat:      chat,
		tasks:     tasks,
		generator: generator,
		store:     store,
	}
}

func (s *service) GenerateFromTopic(ctx context.Context, req TopicQuizRequest) (*TopicQuizResponse, error) {
	req, qt := normalize(req)
	if req.Topic == "" {
		return nil, apperror.New(apperror.InvalidInput, "topic is required")
	}
	log := config.WithContext(ctx).WithField("topic", req.Topic)

	prompt, err := s.renderer.Render(qt, topicVars(req))
	if err != nil {
		return nil, err
	}

	raw := s.chat.ChatWithCache(ctx, prompt, ai.WithModel(req.Model))
	resp := &TopicQuizResponse{Topic: req.Topic, Difficulty: req.Difficulty, QuizType: qt}

	questions, err := ai.ParseQuizResponse(raw, qt)
	if err != nil {
		log.WithError(err).Warn("Returning unparsed quiz text")
		resp.GeneratedQuiz = raw
		return resp, nil
	}
	resp.Questions = questions
	log.WithField("questions", len(questions)).Info("Generated topic quiz")
	return resp, nil
}

func (s *service) GenerateAndSave(ctx context.Context, userID string, req TopicQuizRequest) (*TopicQuizResponse, error) {
	if s.store == nil {
		return nil, apperror.New(apperror.Internal, "quiz storage is not configured")
	}
	resp, err := s.GenerateFromTopic(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		return nil, apperror.New(apperror.ParseError, "generated quiz could not be parsed")
	}

	saved, err := s.store.SaveGenerated(ctx, userID, quiz.GeneratedQuiz{
		Topic:      resp.Topic,
		Difficulty: resp.Difficulty,
		QuizType:   string(resp.QuizType),
	}, resp.Questions)
	if err != nil {
		return nil, err
	}
	resp.QuizID = saved.ID.String()
	return resp, nil
}

func (s *service) GenerateFromURL(ctx context.Context, rawURL, quizType, model string, useCache bool) (*scraper.QuizPayload, error) {
	qt, err := ai.ParseQuizType(quizType)
	if err != nil {
		qt = ai.QuizMCQ
	}
	return s.generator.GenerateQuizFromURL(ctx, rawURL, string(qt), model, useCache)
}

func (s *service) Explain(ctx context.Context, text string) string {
	return s.tasks.GenerateExplanation(ctx, text)
}

func (s *service) Confidence(ctx context.Context, text string) float64 {
	return s.tasks.EstimateConfidence(ctx, text)
}

func (s *service) Tags(ctx context.Context, question string) []string {
	return s.tasks.GenerateTags(ctx, question)
}

func (s *service) Grade(ctx context.Context, req GradeRequest) ai.Grade {
	return s.tasks.GradeAnswer(ctx, req.UserAnswer, req.CorrectOption)
}
