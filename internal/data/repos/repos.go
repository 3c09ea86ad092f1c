package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos/catalog"
	"github.com/yungbote/talent-analytics-backend/internal/data/repos/insights"
	"github.com/yungbote/talent-analytics-backend/internal/data/repos/people"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type EmployeeRepo = people.EmployeeRepo
type EmployeeFilter = people.EmployeeFilter
type FeedbackRepo = people.FeedbackRepo

type JobRoleRepo = catalog.JobRoleRepo
type LearningItemRepo = catalog.LearningItemRepo

type SkillEmbeddingRepo = insights.SkillEmbeddingRepo
type PredictionRepo = insights.PredictionRepo
type ManagerAssessmentRepo = insights.ManagerAssessmentRepo
type WorkforceSnapshotRepo = insights.WorkforceSnapshotRepo

func NewEmployeeRepo(db *gorm.DB, log *logger.Logger) EmployeeRepo {
	return people.NewEmployeeRepo(db, log)
}
func NewFeedbackRepo(db *gorm.DB, log *logger.Logger) FeedbackRepo {
	return people.NewFeedbackRepo(db, log)
}
func NewJobRoleRepo(db *gorm.DB, log *logger.Logger) JobRoleRepo {
	return catalog.NewJobRoleRepo(db, log)
}
func NewLearningItemRepo(db *gorm.DB, log *logger.Logger) LearningItemRepo {
	return catalog.NewLearningItemRepo(db, log)
}
func NewSkillEmbeddingRepo(db *gorm.DB, log *logger.Logger) SkillEmbeddingRepo {
	return insights.NewSkillEmbeddingRepo(db, log)
}
func NewPredictionRepo(db *gorm.DB, log *logger.Logger) PredictionRepo {
	return insights.NewPredictionRepo(db, log)
}
func NewManagerAssessmentRepo(db *gorm.DB, log *logger.Logger) ManagerAssessmentRepo {
	return insights.NewManagerAssessmentRepo(db, log)
}
func NewWorkforceSnapshotRepo(db *gorm.DB, log *logger.Logger) WorkforceSnapshotRepo {
	return insights.NewWorkforceSnapshotRepo(db, log)
}
