package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GrammarRule struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Category      string         `gorm:"not null;index;column:category" json:"category"`
	TitleEn       string         `gorm:"not null;column:title_en" json:"title_en"`
	TitleKk       string         `gorm:"not null;column:title_kk" json:"title_kk"`
	TitleRu       string         `gorm:"not null;column:title_ru" json:"title_ru"`
	ExplanationEn string         `gorm:"type:text;column:explanation_en" json:"explanation_en"`
	ExplanationKk string         `gorm:"type:text;column:explanation_kk" json:"explanation_kk"`
	ExplanationRu string         `gorm:"type:text;column:explanation_ru" json:"explanation_ru"`
	Examples      datatypes.JSON `gorm:"column:examples" json:"examples"`
	Difficulty    Level          `gorm:"not null;index;column:difficulty" json:"difficulty"`
	OrderIndex    int            `gorm:"not null;default:0;column:order_index" json:"order_index"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GrammarRule) TableName() string { return "grammar_rule" }

func (g *GrammarRule) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
