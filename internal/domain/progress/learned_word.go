package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinProficiency = 1
	MaxProficiency = 5
)

type LearnedWord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_learned_word_user_word" json:"user_id"`
	WordID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_learned_word_user_word" json:"word_id"`
	Proficiency int       `gorm:"not null;column:proficiency" json:"proficiency"`
	LearnedAt   time.Time `gorm:"not null;column:learned_at" json:"learned_at"`
}

func (LearnedWord) TableName() string { return "learned_word" }

func (lw *LearnedWord) BeforeCreate(tx *gorm.DB) error {
	if lw.ID == uuid.Nil {
		lw.ID = uuid.New()
	}
	if lw.LearnedAt.IsZero() {
		lw.LearnedAt = time.Now().UTC()
	}
	return nil
}
