package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultTheme = "purple"

// User counters are derived from the event tables and only ever written by
// the recount functions in the services package.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string     `gorm:"not null;column:password_hash" json:"-"`
	CurrentTheme string     `gorm:"not null;default:purple;column:current_theme" json:"current_theme"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`

	StreakDays            int `gorm:"not null;default:0;column:streak_days" json:"streak_days"`
	TotalWordsLearned     int `gorm:"not null;default:0;column:total_words_learned" json:"total_words_learned"`
	TotalCoursesCompleted int `gorm:"not null;default:0;column:total_courses_completed" json:"total_courses_completed"`
	TotalTrophies         int `gorm:"not null;default:0;column:total_trophies" json:"total_trophies"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
