package domain

import (
	"github.com/yungbote/talent-analytics-backend/internal/domain/catalog"
	"github.com/yungbote/talent-analytics-backend/internal/domain/insights"
	"github.com/yungbote/talent-analytics-backend/internal/domain/people"
)

type (
	Employee      = people.Employee
	EmployeeSkill = people.EmployeeSkill
	Feedback      = people.Feedback

	JobRole       = catalog.JobRole
	RequiredSkill = catalog.RequiredSkill
	LearningItem  = catalog.LearningItem

	SkillEmbedding    = insights.SkillEmbedding
	EmbeddingMeta     = insights.EmbeddingMeta
	Prediction        = insights.Prediction
	ManagerAssessment = insights.ManagerAssessment
	AssessmentMetrics = insights.AssessmentMetrics
	AssessmentFactors = insights.AssessmentFactors
	Intervention      = insights.Intervention
	WorkforceSnapshot = insights.WorkforceSnapshot
	AttritionFeatures = insights.AttritionFeatures
)

const (
	StatusActive   = people.StatusActive
	StatusResigned = people.StatusResigned
	StatusOnNotice = people.StatusOnNotice

	EmbeddingSkill        = insights.EmbeddingSkill
	EmbeddingRoleSkill    = insights.EmbeddingRoleSkill
	EmbeddingLearningItem = insights.EmbeddingLearningItem

	PredictionAttrition = insights.PredictionAttrition
	PredictionHiPo      = insights.PredictionHiPo
	ModelAttrition      = insights.ModelAttrition
	ModelHiPoRules      = insights.ModelHiPoRules

	NeverPromotedSentinel = insights.NeverPromotedSentinel
)

// Models lists every table managed by AutoMigrate.
func Models() []any {
	return []any{
		&Employee{},
		&Feedback{},
		&JobRole{},
		&LearningItem{},
		&SkillEmbedding{},
		&Prediction{},
		&ManagerAssessment{},
		&WorkforceSnapshot{},
	}
}
