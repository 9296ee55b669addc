package quiz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string     `gorm:"type:text;not null" json:"title"`
	Topic          string     `gorm:"type:text;not null" json:"topic"`
	Difficulty     string     `gorm:"type:varchar(16);not null;default:'medium'" json:"difficulty"`
	QuizType       string     `gorm:"type:varchar(16);not null;default:'MCQ'" json:"quiz_type"`
	SourceURL      *string    `gorm:"type:text" json:"source_url,omitempty"`
	ScrapedAt      *time.Time `json:"scraped_at,omitempty"`
	TotalQuestions int        `gorm:"not null;default:0" json:"total_questions"`
	CorrectCount   int        `gorm:"not null;default:0" json:"correct_count"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   *string        `gorm:"type:text" json:"explanation,omitempty"`
	OrderIndex    int            `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type UserAnswer struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SelectedAnswer string    `gorm:"type:text;not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	Feedback       string    `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OptionList decodes the jsonb options column. Malformed rows yield no options.
func (q *QuizQuestion) OptionList() []string {
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}
