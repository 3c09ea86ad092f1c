package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type CatalogHandler struct {
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/job-roles
func (h *CatalogHandler) ListRoles(c *gin.Context) {
	out, err := h.catalog.ListRoles(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/job-roles
func (h *CatalogHandler) UpsertRole(c *gin.Context) {
	var req types.JobRole
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.catalog.UpsertRole(c.Request.Context(), &req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/learning-items
func (h *CatalogHandler) ListLearningItems(c *gin.Context) {
	out, err := h.catalog.ListLearningItems(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/learning-items
func (h *CatalogHandler) UpsertLearningItem(c *gin.Context) {
	var req types.LearningItem
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.catalog.UpsertLearningItem(c.Request.Context(), &req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}
