package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/talent-analytics-backend/internal/http"
	httpMW "github.com/yungbote/talent-analytics-backend/internal/http/middleware"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, metrics *observability.Metrics) *gin.Engine {
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.OTel.ServiceName,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
		EmployeeHandler:  h.Employee,
		CatalogHandler:   h.Catalog,
		AIHandler:        h.AI,
		AnalyticsHandler: h.Analytics,
		ScenarioHandler:  h.Scenario,
		ManagerHandler:   h.Manager,
		HealthHandler:    h.Health,
	})
}
