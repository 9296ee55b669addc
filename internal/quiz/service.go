package quiz

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/config"
	"github.com/sirupsen/logrus"
)

// Grader is the slice of the AI tasks the quiz flow relies on.
type Grader interface {
	GradeAnswer(ctx context.Context, userAnswer, correctOption string) ai.Grade
	GenerateExplanation(ctx context.Context, quizText string) string
	EstimateConfidence(ctx context.Context, block string) float64
}

type QuizService interface {
	SaveGenerated(ctx context.Context, userID string, meta GeneratedQuiz, records []ai.QuestionRecord) (*Quiz, error)
	CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*QuizQuestion) error
	DeleteQuiz(ctx context.Context, userID, quizID string) error
	AddQuestionToQuiz(ctx context.Context, userID, quizID string, question *QuizQuestion) error
	RemoveQuestion(ctx context.Context, userID, questionID string) error
	GetQuizWithQuestions(ctx context.Context, userID, quizID string) (*QuizWithQuestionsDTO, error)
	ListQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error)

	Submit(ctx context.Context, userID, quizID string, answers []AnswerInput) (*SubmitResult, error)
	Explain(ctx context.Context, userID, quizID string) (string, error)
	Confidence(ctx context.Context, userID, quizID string) (float64, error)
	Counts(ctx context.Context) (Counts, error)
}

type quizService struct {
	repo   QuizRepository
	grader Grader
}

func NewService(repo QuizRepository, grader Grader) QuizService {
	return &quizService{repo: repo, grader: grader}
}

func (s *quizService) SaveGenerated(ctx context.Context, userID string, meta GeneratedQuiz, records []ai.QuestionRecord) (*Quiz, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.New(apperror.InvalidInput, "invalid user id")
	}

	quiz := &Quiz{
		ID:         uuid.New(),
		UserID:     uid,
		Title:      meta.Title,
		Topic:      meta.Topic,
		Difficulty: meta.Difficulty,
		QuizType:   meta.QuizType,
	}
	if quiz.Title == "" {
		quiz.Title = meta.Topic
	}
	if meta.SourceURL != "" {
		src := meta.SourceURL
		quiz.SourceURL = &src
	}
	if !meta.ScrapedAt.IsZero() {
		at := meta.ScrapedAt
		quiz.ScrapedAt = &at
	}

	questions := make([]*QuizQuestion, 0, len(records))
	for i, rec := range records {
		q, err := questionFromRecord(rec, i)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := s.CreateQuizWithQuestions(ctx, quiz, questions); err != nil {
		return nil, err
	}
	quiz.Questions = derefQuestions(questions)
	return quiz, nil
}

func questionFromRecord(rec ai.QuestionRecord, index int) (*QuizQuestion, error) {
	opts := rec.Options()
	if opts == nil {
		opts = []string{}
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "encode options", err)
	}
	q := &QuizQuestion{
		ID:            uuid.New(),
		Content:       rec.Question(),
		Options:       raw,
		CorrectAnswer: rec.Answer(),
		OrderIndex:    index,
	}
	if e := rec.Explanation(); e != "" {
		q.Explanation = &e
	}
	return q, nil
}

func derefQuestions(in []*QuizQuestion) []QuizQuestion {
	out := make([]QuizQuestion, len(in))
	for i, q := range in {
		out[i] = *q
	}
	return out
}

func (s *quizService) CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*QuizQuestion) error {
	log := config.WithContext(ctx)

	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	for i, q := range questions {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		q.OrderIndex = i
	}
	quiz.TotalQuestions = len(questions)

	if err := s.repo.Create(ctx, quiz, questions); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return err
	}

	log.WithField("quiz_id", quiz.ID.String()).Info("Quiz created")
	return nil
}

// owned loads a quiz and hides quizzes that belong to someone else.
func (s *quizService) owned(ctx context.Context, userID, quizID string) (*Quiz, error) {
	if _, err := uuid.Parse(quizID); err != nil {
		return nil, apperror.New(apperror.InvalidInput, "invalid quiz id")
	}
	qz, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if qz == nil || qz.UserID.String() != userID {
		return nil, apperror.New(apperror.NotFound, "quiz not found")
	}
	return qz, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, userID, quizID string) error {
	log := config.WithContext(ctx)

	if _, err := s.owned(ctx, userID, quizID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}

	log.WithField("quiz_id", quizID).Info("Quiz deleted")
	return nil
}

func (s *quizService) AddQuestionToQuiz(ctx context.Context, userID, quizID string, question *QuizQuestion) error {
	log := config.WithContext(ctx)

	qz, err := s.owned(ctx, userID, quizID)
	if err != nil {
		return err
	}

	question.QuizID = qz.ID
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	question.OrderIndex = len(qz.Questions)

	if err := s.repo.AddQuestions(ctx, []*QuizQuestion{question}); err != nil {
		log.WithError(err).Error("Failed to add question")
		return err
	}

	log.WithField("question_id", question.ID.String()).Info("Question added")
	return nil
}

// RemoveQuestion deletes a question only when its quiz belongs to userID.
func (s *quizService) RemoveQuestion(ctx context.Context, userID, questionID string) error {
	log := config.WithContext(ctx).WithField("question_id", questionID)

	if _, err := uuid.Parse(questionID); err != nil {
		return apperror.New(apperror.InvalidInput, "invalid question id")
	}
	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q == nil {
		return apperror.New(apperror.NotFound, "question not found")
	}
	if _, err := s.owned(ctx, userID, q.QuizID.String()); err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return apperror.New(apperror.NotFound, "question not found")
		}
		return err
	}

	if err := s.repo.DeleteQuestion(ctx, q); err != nil {
		log.WithError(err).Error("Failed to remove question")
		return err
	}

	log.Info("Question removed")
	return nil
}

func (s *quizService) GetQuizWithQuestions(ctx context.Context, userID, quizID string) (*QuizWithQuestionsDTO, error) {
	qz, err := s.owned(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz questions")
		return nil, err
	}

	qz.Questions = nil
	return &QuizWithQuestionsDTO{Quiz: qz, Questions: questions}, nil
}

func (s *quizService) ListQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error) {
	quizzes, err := s.repo.ListQuizzesByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quizzes")
		return nil, err
	}
	return quizzes, nil
}

// Submit grades each answer against its stored question. Answers naming an
// unknown question are skipped; an answer outside the question's options is
// rejected.
func (s *quizService) Submit(ctx context.Context, userID, quizID string, answers []AnswerInput) (*SubmitResult, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	qz, err := s.owned(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*QuizQuestion, len(qz.Questions))
	for i := range qz.Questions {
		byID[qz.Questions[i].ID] = &qz.Questions[i]
	}

	var (
		stored  []*UserAnswer
		results = []AnswerResult{}
		correct int
	)
	for _, in := range answers {
		q, ok := byID[in.QuestionID]
		if !ok {
			log.WithField("question_id", in.QuestionID.String()).Warn("Skipping answer for unknown question")
			continue
		}
		if opts := q.OptionList(); len(opts) > 0 && !containsOption(opts, in.SelectedAnswer) {
			return nil, apperror.Newf(apperror.InvalidInput, "invalid answer %q for question %s", in.SelectedAnswer, q.ID)
		}

		grade := s.grader.GradeAnswer(ctx, in.SelectedAnswer, q.CorrectAnswer)
		if grade.IsCorrect {
			correct++
		}

		ua := &UserAnswer{
			ID:             uuid.New(),
			QuizID:         qz.ID,
			QuestionID:     q.ID,
			UserID:         qz.UserID,
			SelectedAnswer: in.SelectedAnswer,
			IsCorrect:      grade.IsCorrect,
			Feedback:       grade.Feedback,
		}
		stored = append(stored, ua)
		results = append(results, AnswerResult{
			ID:             ua.ID,
			QuestionID:     ua.QuestionID,
			SelectedAnswer: ua.SelectedAnswer,
			IsCorrect:      ua.IsCorrect,
			Feedback:       ua.Feedback,
		})
	}

	if err := s.repo.SaveAnswers(ctx, qz.ID, stored, correct); err != nil {
		log.WithError(err).Error("Failed to save answers")
		return nil, err
	}

	total := len(results)
	log.WithFields(logrus.Fields{"total": total, "correct": correct}).Info("Quiz submitted")
	return &SubmitResult{
		Summary: Summary{Total: total, Correct: correct, ScorePercentage: scorePercentage(correct, total)},
		Answers: results,
	}, nil
}

func containsOption(opts []string, answer string) bool {
	for _, o := range opts {
		if o == answer {
			return true
		}
	}
	return false
}

func scorePercentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100
}

// questionBlock joins the quiz's question texts, one per line.
func (s *quizService) questionBlock(ctx context.Context, userID, quizID string) (string, error) {
	qz, err := s.owned(ctx, userID, quizID)
	if err != nil {
		return "", err
	}
	if len(qz.Questions) == 0 {
		return "", apperror.New(apperror.NotFound, "no questions found")
	}
	lines := make([]string, len(qz.Questions))
	for i, q := range qz.Questions {
		lines[i] = q.Content
	}
	return strings.Join(lines, "\n"), nil
}

func (s *quizService) Explain(ctx context.Context, userID, quizID string) (string, error) {
	block, err := s.questionBlock(ctx, userID, quizID)
	if err != nil {
		return "", err
	}
	return s.grader.GenerateExplanation(ctx, block), nil
}

func (s *quizService) Confidence(ctx context.Context, userID, quizID string) (float64, error) {
	block, err := s.questionBlock(ctx, userID, quizID)
	if err != nil {
		return 0, err
	}
	return s.grader.EstimateConfidence(ctx, block), nil
}

func (s *quizService) Counts(ctx context.Context) (Counts, error) {
	return s.repo.Counts(ctx)
}
