package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type ScenarioHandler struct {
	scenarios services.ScenarioService
}

func NewScenarioHandler(scenarios services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios}
}

// POST /api/scenario/attrition
// body: { "employeeIds": ["..."] }
func (h *ScenarioHandler) Attrition(c *gin.Context) {
	var req struct {
		EmployeeIDs []string `json:"employeeIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.scenarios.RunAttritionScenario(c.Request.Context(), req.EmployeeIDs)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}
