package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Word struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID          uuid.UUID `gorm:"type:uuid;index" json:"lesson_id"`
	Kazakh            string    `gorm:"not null;column:kazakh" json:"kazakh"`
	English           string    `gorm:"not null;column:english" json:"english"`
	Russian           string    `gorm:"not null;column:russian" json:"russian"`
	Pronunciation     string    `gorm:"column:pronunciation" json:"pronunciation"`
	ExampleSentenceKk string    `gorm:"column:example_sentence_kk" json:"example_sentence_kk"`
	ExampleSentenceEn string    `gorm:"column:example_sentence_en" json:"example_sentence_en"`
	ExampleSentenceRu string    `gorm:"column:example_sentence_ru" json:"example_sentence_ru"`
	WordType          string    `gorm:"column:word_type" json:"word_type"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Word) TableName() string { return "word" }

func (w *Word) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
