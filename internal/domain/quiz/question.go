package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTranslation    QuestionType = "translation"
	QuestionFillBlank      QuestionType = "fill_blank"
)

func ParseQuestionType(raw string) (QuestionType, error) {
	qt := QuestionType(strings.ToLower(strings.TrimSpace(raw)))
	switch qt {
	case QuestionMultipleChoice, QuestionTranslation, QuestionFillBlank:
		return qt, nil
	default:
		return "", fmt.Errorf("unknown question type %q", raw)
	}
}

// Question.CorrectAnswer never leaves the service layer except in a graded
// submission.
type Question struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	QuestionTextEn string         `gorm:"not null;column:question_text_en" json:"question_text_en"`
	QuestionTextKk string         `gorm:"column:question_text_kk" json:"question_text_kk"`
	QuestionTextRu string         `gorm:"column:question_text_ru" json:"question_text_ru"`
	QuestionType   QuestionType   `gorm:"not null;column:question_type" json:"question_type"`
	CorrectAnswer  string         `gorm:"not null;column:correct_answer" json:"-"`
	Options        datatypes.JSON `gorm:"column:options" json:"options"`
	Points         int            `gorm:"not null;column:points" json:"points"`
	OrderIndex     int            `gorm:"not null;default:0;column:order_index" json:"order_index"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Question) TableName() string { return "quiz_question" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
