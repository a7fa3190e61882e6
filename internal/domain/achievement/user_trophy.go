package achievement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserTrophy is a grant. (user_id, trophy_id) is unique, so inserts race safely.
type UserTrophy struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_trophy_user_trophy" json:"user_id"`
	TrophyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_trophy_user_trophy" json:"trophy_id"`
	EarnedAt time.Time `gorm:"not null;index;column:earned_at" json:"earned_at"`
}

func (UserTrophy) TableName() string { return "user_trophy" }

func (ut *UserTrophy) BeforeCreate(tx *gorm.DB) error {
	if ut.ID == uuid.Nil {
		ut.ID = uuid.New()
	}
	if ut.EarnedAt.IsZero() {
		ut.EarnedAt = time.Now().UTC()
	}
	return nil
}
