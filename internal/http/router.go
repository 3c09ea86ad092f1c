package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/talent-analytics-backend/internal/http/handlers"
	httpMW "github.com/yungbote/talent-analytics-backend/internal/http/middleware"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/ctxutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	EmployeeHandler  *httpH.EmployeeHandler
	CatalogHandler   *httpH.CatalogHandler
	AIHandler        *httpH.AIHandler
	AnalyticsHandler *httpH.AnalyticsHandler
	ScenarioHandler  *httpH.ScenarioHandler
	ManagerHandler   *httpH.ManagerHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	const (
		admin    = ctxutil.RoleHRAdmin
		manager  = ctxutil.RoleManager
		employee = ctxutil.RoleEmployee
	)
	staff := httpMW.RequireRole(admin, manager)
	anyone := httpMW.RequireRole(admin, manager, employee)
	adminOnly := httpMW.RequireRole(admin)

	protected := r.Group("/api")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Employees
		if h := cfg.EmployeeHandler; h != nil {
			protected.GET("/employees", staff, h.List)
			protected.GET("/employees/:employeeId", anyone, h.Get)
			protected.POST("/employees", adminOnly, h.Create)
			protected.PUT("/employees/:employeeId", adminOnly, h.Update)
		}

		// Catalog
		if h := cfg.CatalogHandler; h != nil {
			protected.GET("/job-roles", anyone, h.ListRoles)
			protected.POST("/job-roles", adminOnly, h.UpsertRole)
			protected.GET("/learning-items", anyone, h.ListLearningItems)
			protected.POST("/learning-items", adminOnly, h.UpsertLearningItem)
		}

		// AI
		if h := cfg.AIHandler; h != nil {
			ai := protected.Group("/ai")
			ai.POST("/attrition/:employeeId", staff, h.ScoreAttrition)
			ai.GET("/attrition/:employeeId/history", staff, h.AttritionHistory)
			ai.GET("/career/:employeeId", anyone, h.CareerPaths)
			ai.POST("/feedback/analyze", staff, h.AnalyzeFeedback)
			ai.POST("/feedback/:employeeId", staff, h.AddFeedback)
			ai.GET("/feedback/summary/:employeeId", staff, h.FeedbackSummary)
			ai.POST("/hipo/:employeeId", staff, h.EvaluateHiPo)
			ai.GET("/skills/gaps/:employeeId", anyone, h.SkillGaps)
			ai.POST("/skills/embeddings/roles", adminOnly, h.RebuildRoleEmbeddings)
			ai.POST("/skills/embeddings/learning", adminOnly, h.RebuildLearningEmbeddings)
			ai.GET("/skills/similar", anyone, h.FindSimilar)
		}

		// Analytics
		if h := cfg.AnalyticsHandler; h != nil {
			an := protected.Group("/analytics", adminOnly)
			an.GET("/headcount", h.Headcount)
			an.GET("/attrition-risk", h.AttritionRisk)
			an.GET("/attrition-risk-by-dept", h.AttritionRiskByDepartment)
			an.GET("/attrition-forecast", h.Forecast)
			an.POST("/attrition/rescore", h.Rescore)
		}

		// Scenario
		if h := cfg.ScenarioHandler; h != nil {
			protected.POST("/scenario/attrition", adminOnly, h.Attrition)
		}

		// Managers
		if h := cfg.ManagerHandler; h != nil {
			protected.GET("/managers/:id/assessment", anyone, h.Assessment)
			protected.GET("/managers/:id/assessment/history", anyone, h.History)
		}
	}

	return r
}
