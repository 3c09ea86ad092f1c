package insights

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PredictionAttrition = "ATTRITION"
	PredictionHiPo      = "HIPO"

	ModelAttrition = "ml-service-v2"
	ModelHiPoRules = "rules-v1"
)

// Prediction is append-only history of model output for an employee.
type Prediction struct {
	ID           uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID   string                             `gorm:"column:employee_id;not null;index" json:"employeeId"`
	Type         string                             `gorm:"column:type;not null;index" json:"type"`
	Score        float64                            `gorm:"column:score" json:"score"`
	Band         string                             `gorm:"column:band" json:"band,omitempty"`
	FeaturesUsed datatypes.JSONType[map[string]any] `gorm:"column:features_used" json:"featuresUsed"`
	Explanation  string                             `gorm:"column:explanation;type:text" json:"explanation,omitempty"`
	ModelVersion string                             `gorm:"column:model_version" json:"modelVersion"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Prediction) TableName() string { return "predictions" }

func (p *Prediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
