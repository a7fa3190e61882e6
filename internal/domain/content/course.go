package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course.TotalLessons mirrors the number of lesson rows and is maintained by
// CourseRepo.RecountLessons.
type Course struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TitleEn       string    `gorm:"not null;column:title_en" json:"title_en"`
	TitleKk       string    `gorm:"not null;column:title_kk" json:"title_kk"`
	TitleRu       string    `gorm:"not null;column:title_ru" json:"title_ru"`
	DescriptionEn string    `gorm:"column:description_en" json:"description_en"`
	DescriptionKk string    `gorm:"column:description_kk" json:"description_kk"`
	DescriptionRu string    `gorm:"column:description_ru" json:"description_ru"`
	Level         Level     `gorm:"not null;index;column:level" json:"level"`
	TotalLessons  int       `gorm:"not null;default:0;column:total_lessons" json:"total_lessons"`
	OrderIndex    int       `gorm:"not null;default:0;index;column:order_index" json:"order_index"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
