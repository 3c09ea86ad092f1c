package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type AnalyticsHandler struct {
	analytics services.AnalyticsService
	attrition services.AttritionService
}

func NewAnalyticsHandler(analytics services.AnalyticsService, attrition services.AttritionService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, attrition: attrition}
}

// GET /api/analytics/headcount
func (h *AnalyticsHandler) Headcount(c *gin.Context) {
	out, err := h.analytics.HeadcountByDepartment(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/analytics/attrition-risk
func (h *AnalyticsHandler) AttritionRisk(c *gin.Context) {
	out, err := h.analytics.AttritionRiskStats(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/analytics/attrition-risk-by-dept
func (h *AnalyticsHandler) AttritionRiskByDepartment(c *gin.Context) {
	out, err := h.analytics.AttritionRiskByDepartment(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/analytics/attrition-forecast?departmentId=
func (h *AnalyticsHandler) Forecast(c *gin.Context) {
	out, err := h.analytics.Forecast(c.Request.Context(), c.Query("departmentId"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/analytics/attrition/rescore
// body: { "employeeIds": ["..."] } or { "departmentId": "..." }; an empty body rescores every active employee.
func (h *AnalyticsHandler) Rescore(c *gin.Context) {
	var req struct {
		EmployeeIDs  []string `json:"employeeIds"`
		DepartmentID string   `json:"departmentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var (
		out []services.BatchScoreItem
		err error
	)
	if len(req.EmployeeIDs) > 0 {
		out, err = h.attrition.ScoreMany(c.Request.Context(), req.EmployeeIDs)
	} else {
		out, err = h.attrition.RescoreDepartment(c.Request.Context(), req.DepartmentID)
	}
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": out})
}
