package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultMinLevel = 3

type RequiredSkill struct {
	Name     string `json:"name"`
	MinLevel int    `json:"minLevel"`
}

// JobRole lists its required skills in a stable order; skill-gap output follows that order.
type JobRole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID      string    `gorm:"column:role_id;not null;uniqueIndex" json:"roleId"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	JobFamily   string    `gorm:"column:job_family" json:"jobFamily,omitempty"`
	Level       string    `gorm:"column:level" json:"level,omitempty"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`

	RequiredSkills datatypes.JSONSlice[RequiredSkill] `gorm:"column:required_skills" json:"requiredSkills"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (JobRole) TableName() string { return "job_roles" }

func (r *JobRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NormalizeSkills fills in the default minimum level.
func (r *JobRole) NormalizeSkills() {
	for i := range r.RequiredSkills {
		if r.RequiredSkills[i].MinLevel <= 0 {
			r.RequiredSkills[i].MinLevel = DefaultMinLevel
		}
	}
}
