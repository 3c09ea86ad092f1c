package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ItemCourse    = "course"
	ItemProject   = "project"
	ItemMentoring = "mentoring"
	ItemArticle   = "article"
	ItemOther     = "other"
)

func ValidItemType(s string) bool {
	switch s {
	case ItemCourse, ItemProject, ItemMentoring, ItemArticle, ItemOther:
		return true
	default:
		return false
	}
}

type LearningItem struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID         string                      `gorm:"column:item_id;not null;uniqueIndex" json:"itemId"`
	Title          string                      `gorm:"column:title;not null" json:"title"`
	Type           string                      `gorm:"column:type;not null;default:'course'" json:"type"`
	SkillsTargeted datatypes.JSONSlice[string] `gorm:"column:skills_targeted" json:"skillsTargeted"`
	Level          string                      `gorm:"column:level" json:"level,omitempty"`
	DurationHours  float64                     `gorm:"column:duration_hours" json:"durationHours,omitempty"`
	Provider       string                      `gorm:"column:provider" json:"provider,omitempty"`
	URL            string                      `gorm:"column:url" json:"url,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LearningItem) TableName() string { return "learning_items" }

func (l *LearningItem) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Type == "" {
		l.Type = ItemCourse
	}
	return nil
}
