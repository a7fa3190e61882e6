package achievement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Trophy struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	NameEn           string          `gorm:"not null;column:name_en" json:"name_en"`
	NameKk           string          `gorm:"not null;column:name_kk" json:"name_kk"`
	NameRu           string          `gorm:"not null;column:name_ru" json:"name_ru"`
	DescriptionEn    string          `gorm:"column:description_en" json:"description_en"`
	DescriptionKk    string          `gorm:"column:description_kk" json:"description_kk"`
	DescriptionRu    string          `gorm:"column:description_ru" json:"description_ru"`
	Icon             string          `gorm:"column:icon" json:"icon"`
	RequirementType  RequirementType `gorm:"not null;index;column:requirement_type" json:"requirement_type"`
	RequirementValue int             `gorm:"not null;column:requirement_value" json:"requirement_value"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Trophy) TableName() string { return "trophy" }

func (t *Trophy) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// SatisfiedBy reports whether an event of the trophy's requirement type
// with the given magnitude earns it.
func (t *Trophy) SatisfiedBy(magnitude int) bool {
	return t.RequirementType.Satisfied(t.RequirementValue, magnitude)
}
