package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result is append-only: one row per submission, never updated.
type Result struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_quiz_result_user_course" json:"user_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_quiz_result_user_course" json:"course_id"`
	Score       int       `gorm:"not null;column:score" json:"score"`
	TotalPoints int       `gorm:"not null;column:total_points" json:"total_points"`
	Percentage  float64   `gorm:"not null;column:percentage" json:"percentage"`
	Passed      bool      `gorm:"not null;default:false;column:passed" json:"passed"`
	CompletedAt time.Time `gorm:"not null;column:completed_at" json:"completed_at"`
}

func (Result) TableName() string { return "quiz_result" }

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CompletedAt.IsZero() {
		r.CompletedAt = time.Now().UTC()
	}
	return nil
}
