package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type ManagerHandler struct {
	managers services.ManagerService
}

func NewManagerHandler(managers services.ManagerService) *ManagerHandler {
	return &ManagerHandler{managers: managers}
}

// GET /api/managers/:id/assessment?forceRefresh=true
func (h *ManagerHandler) Assessment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.RespondErr(c, apierr.Validation("manager id is required"))
		return
	}
	force, _ := strconv.ParseBool(c.DefaultQuery("forceRefresh", "false"))
	out, err := h.managers.GetAssessment(c.Request.Context(), id, force)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/managers/:id/assessment/history
func (h *ManagerHandler) History(c *gin.Context) {
	out, err := h.managers.AssessmentHistory(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}
