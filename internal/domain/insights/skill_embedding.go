package insights

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EmbeddingSkill        = "skill"
	EmbeddingRoleSkill    = "role_skill"
	EmbeddingLearningItem = "learning_item"
)

type EmbeddingMeta struct {
	RoleID    string `json:"roleId,omitempty"`
	SkillName string `json:"skillName,omitempty"`
	ItemID    string `json:"itemId,omitempty"`
}

// SkillEmbedding holds one vector per (type, identifying key). Key is unique, so writes upsert.
type SkillEmbedding struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key   string    `gorm:"column:key;not null;uniqueIndex" json:"key"`
	Type  string    `gorm:"column:type;not null;index" json:"type"`
	Label string    `gorm:"column:label" json:"label"`
	Text  string    `gorm:"column:text;type:text" json:"text"`

	Vector datatypes.JSONSlice[float32]      `gorm:"column:vector" json:"vector,omitempty"`
	Meta   datatypes.JSONType[EmbeddingMeta] `gorm:"column:meta" json:"meta"`

	MetaRoleID string `gorm:"column:meta_role_id;index" json:"-"`
	MetaItemID string `gorm:"column:meta_item_id;index" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SkillEmbedding) TableName() string { return "skill_embeddings" }

func (s *SkillEmbedding) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m := s.Meta.Data()
	s.MetaRoleID = m.RoleID
	s.MetaItemID = m.ItemID
	return nil
}
