package people

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FeedbackSurvey  = "survey"
	FeedbackExit    = "exit"
	FeedbackManager = "manager"
	FeedbackPeer    = "peer"
	FeedbackSelf    = "self"
	FeedbackOther   = "other"
)

func ValidFeedbackSource(s string) bool {
	switch s {
	case FeedbackSurvey, FeedbackExit, FeedbackManager, FeedbackPeer, FeedbackSelf, FeedbackOther:
		return true
	default:
		return false
	}
}

type Feedback struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;not null;index" json:"employeeId"`
	Source     string    `gorm:"column:source;not null;default:'other'" json:"source"`
	Text       string    `gorm:"column:text;type:text;not null" json:"text"`

	SentimentScore *float64                    `gorm:"column:sentiment_score" json:"sentimentScore,omitempty"`
	Topics         datatypes.JSONSlice[string] `gorm:"column:topics" json:"topics,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Source == "" {
		f.Source = FeedbackOther
	}
	return nil
}
