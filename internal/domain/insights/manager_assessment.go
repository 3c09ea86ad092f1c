package insights

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentMetrics struct {
	TeamSize           int     `json:"teamSize"`
	AveragePerformance float64 `json:"averagePerformance"`
	RetentionRate      float64 `json:"retentionRate"`
	AverageEngagement  float64 `json:"averageEngagement"`
}

type AssessmentFactors struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

type Intervention struct {
	Action         string  `json:"action"`
	PredictedScore float64 `json:"predictedScore"`
	Explanation    string  `json:"explanation"`
}

// ManagerAssessment rows accumulate; the newest row inside the freshness window is reused.
type ManagerAssessment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ManagerID    string    `gorm:"column:manager_id;not null;index" json:"managerId"`
	Date         time.Time `gorm:"column:date" json:"date"`
	OverallScore int       `gorm:"column:overall_score" json:"overallScore"`

	Metrics                datatypes.JSONType[AssessmentMetrics] `gorm:"column:metrics" json:"metrics"`
	Factors                datatypes.JSONType[AssessmentFactors] `gorm:"column:factors" json:"factors"`
	AIAnalysis             string                                `gorm:"column:ai_analysis;type:text" json:"aiAnalysis"`
	SuggestedInterventions datatypes.JSONSlice[Intervention]     `gorm:"column:suggested_interventions" json:"suggestedInterventions"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ManagerAssessment) TableName() string { return "manager_assessments" }

func (m *ManagerAssessment) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
