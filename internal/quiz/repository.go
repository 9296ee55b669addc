package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(ctx context.Context, q *Quiz, questions []*QuizQuestion) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	ListQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error)
	Delete(ctx context.Context, id string) error

	AddQuestions(ctx context.Context, questions []*QuizQuestion) error
	ListQuestionsByQuiz(ctx context.Context, quizID string) ([]*QuizQuestion, error)
	GetQuestion(ctx context.Context, id string) (*QuizQuestion, error)
	DeleteQuestion(ctx context.Context, q *QuizQuestion) error

	SaveAnswers(ctx context.Context, quizID uuid.UUID, answers []*UserAnswer, correct int) error
	Counts(ctx context.Context) (Counts, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, q *Quiz, questions []*QuizQuestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Create(q).Error; err != nil {
			return err
		}
		for _, question := range questions {
			question.QuizID = q.ID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *quizRepository) GetByID(ctx context.Context, id string) (*Quiz, error) {
	var quiz Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ListQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Quiz{}, "id = ?", id).Error
}

func (r *quizRepository) AddQuestions(ctx context.Context, questions []*QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		return tx.Model(&Quiz{}).
			Where("id = ?", questions[0].QuizID).
			UpdateColumn("total_questions", gorm.Expr("total_questions + ?", len(questions))).Error
	})
}

func (r *quizRepository) ListQuestionsByQuiz(ctx context.Context, quizID string) ([]*QuizQuestion, error) {
	var questions []*QuizQuestion
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) GetQuestion(ctx context.Context, id string) (*QuizQuestion, error) {
	var q QuizQuestion
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) DeleteQuestion(ctx context.Context, q *QuizQuestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&QuizQuestion{}, "id = ?", q.ID)
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		return tx.Model(&Quiz{}).
			Where("id = ? AND total_questions > 0", q.QuizID).
			UpdateColumn("total_questions", gorm.Expr("total_questions - 1")).Error
	})
}

// SaveAnswers stores a submission and marks the quiz completed.
func (r *quizRepository) SaveAnswers(ctx context.Context, quizID uuid.UUID, answers []*UserAnswer, correct int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return tx.Model(&Quiz{}).Where("id = ?", quizID).Updates(map[string]interface{}{
			"correct_count": correct,
			"completed_at":  time.Now().UTC(),
		}).Error
	})
}

func (r *quizRepository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := r.db.WithContext(ctx)
	if err := db.Model(&Quiz{}).Count(&c.Quizzes).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&Quiz{}).Where("completed_at IS NOT NULL").Count(&c.Completed).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&QuizQuestion{}).Count(&c.Questions).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&UserAnswer{}).Count(&c.Answers).Error; err != nil {
		return Counts{}, err
	}
	return c, nil
}
