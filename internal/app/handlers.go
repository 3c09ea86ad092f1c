package app

import (
	httpH "github.com/yungbote/talent-analytics-backend/internal/http/handlers"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Employee  *httpH.EmployeeHandler
	Catalog   *httpH.CatalogHandler
	AI        *httpH.AIHandler
	Analytics *httpH.AnalyticsHandler
	Scenario  *httpH.ScenarioHandler
	Manager   *httpH.ManagerHandler
}

func wireHandlers(log *logger.Logger, s Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Employee:  httpH.NewEmployeeHandler(s.Employee),
		Catalog:   httpH.NewCatalogHandler(s.Catalog),
		AI:        httpH.NewAIHandler(s.Attrition, s.Career, s.SkillEmbedding),
		Analytics: httpH.NewAnalyticsHandler(s.Analytics, s.Attrition),
		Scenario:  httpH.NewScenarioHandler(s.Scenario),
		Manager:   httpH.NewManagerHandler(s.Manager),
	}
}
