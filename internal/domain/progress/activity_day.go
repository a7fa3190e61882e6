package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DayLayout = "2006-01-02"

// ActivityDay marks that a user did something on a UTC calendar day.
type ActivityDay struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_day_user_day" json:"user_id"`
	Day       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_activity_day_user_day" json:"day"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (ActivityDay) TableName() string { return "activity_day" }

func (a *ActivityDay) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
