package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type Repos struct {
	Employee          repos.EmployeeRepo
	Feedback          repos.FeedbackRepo
	JobRole           repos.JobRoleRepo
	LearningItem      repos.LearningItemRepo
	SkillEmbedding    repos.SkillEmbeddingRepo
	Prediction        repos.PredictionRepo
	ManagerAssessment repos.ManagerAssessmentRepo
	WorkforceSnapshot repos.WorkforceSnapshotRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Employee:          repos.NewEmployeeRepo(db, log),
		Feedback:          repos.NewFeedbackRepo(db, log),
		JobRole:           repos.NewJobRoleRepo(db, log),
		LearningItem:      repos.NewLearningItemRepo(db, log),
		SkillEmbedding:    repos.NewSkillEmbeddingRepo(db, log),
		Prediction:        repos.NewPredictionRepo(db, log),
		ManagerAssessment: repos.NewManagerAssessmentRepo(db, log),
		WorkforceSnapshot: repos.NewWorkforceSnapshotRepo(db, log),
	}
}
