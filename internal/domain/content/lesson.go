package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	TitleEn     string    `gorm:"not null;column:title_en" json:"title_en"`
	TitleKk     string    `gorm:"not null;column:title_kk" json:"title_kk"`
	TitleRu     string    `gorm:"not null;column:title_ru" json:"title_ru"`
	ContentEn   string    `gorm:"type:text;column:content_en" json:"content_en"`
	ContentKk   string    `gorm:"type:text;column:content_kk" json:"content_kk"`
	ContentRu   string    `gorm:"type:text;column:content_ru" json:"content_ru"`
	LessonOrder int       `gorm:"not null;default:0;column:lesson_order" json:"lesson_order"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
