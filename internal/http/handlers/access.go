package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/ctxutil"
)

// employeeParam reads :employeeId and enforces that employees only see themselves.
func employeeParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("employeeId"))
	if id == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_employee_id", apierr.Validation("employeeId is required"))
		return "", false
	}
	if !ctxutil.GetIdentity(c.Request.Context()).CanSee(id) {
		response.RespondErr(c, apierr.Forbidden("Forbidden"))
		return "", false
	}
	return id, true
}
