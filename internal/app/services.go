package app

import (
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type Services struct {
	Notifier       services.EventNotifier
	SkillEmbedding services.SkillEmbeddingService
	Attrition      services.AttritionService
	Career         services.CareerService
	Manager        services.ManagerService
	Analytics      services.AnalyticsService
	Scenario       services.ScenarioService
	Employee       services.EmployeeService
	Catalog        services.CatalogService
}

func wireServices(log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")

	notifier := services.NewEventNotifier(log, c.EventBus)
	embeddings := services.NewSkillEmbeddingService(log, r.SkillEmbedding, r.JobRole, r.LearningItem, c.Generator, c.Embedder, cfg.EmbedConcurrency)

	return Services{
		Notifier:       notifier,
		SkillEmbedding: embeddings,
		Attrition:      services.NewAttritionService(log, r.Employee, r.Prediction, c.Oracle, c.Generator, notifier),
		Career:         services.NewCareerService(log, r.Employee, r.JobRole, r.LearningItem, r.Feedback, r.Prediction, c.Generator, notifier),
		Manager:        services.NewManagerService(log, r.Employee, r.ManagerAssessment, c.Generator, notifier, cfg.AssessmentFreshness),
		Analytics:      services.NewAnalyticsService(log, r.Employee, r.WorkforceSnapshot),
		Scenario:       services.NewScenarioService(log, r.Employee, c.Generator),
		Employee:       services.NewEmployeeService(log, r.Employee),
		Catalog:        services.NewCatalogService(log, r.JobRole, r.LearningItem, embeddings),
	}
}
