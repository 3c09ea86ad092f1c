package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type AIHandler struct {
	attrition  services.AttritionService
	career     services.CareerService
	embeddings services.SkillEmbeddingService
}

func NewAIHandler(
	attrition services.AttritionService,
	career services.CareerService,
	embeddings services.SkillEmbeddingService,
) *AIHandler {
	return &AIHandler{attrition: attrition, career: career, embeddings: embeddings}
}

// POST /api/ai/attrition/:employeeId
func (h *AIHandler) ScoreAttrition(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	res, err := h.attrition.ScoreEmployee(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/ai/attrition/:employeeId/history
func (h *AIHandler) AttritionHistory(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	out, err := h.attrition.ListPredictions(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/ai/career/:employeeId
func (h *AIHandler) CareerPaths(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	out, err := h.career.RecommendCareerPaths(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/ai/feedback/analyze
// body: { "text": "..." }
func (h *AIHandler) AnalyzeFeedback(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.RespondErr(c, apierr.Validation("Text is required"))
		return
	}
	out, err := h.career.AnalyzeFeedbackText(c.Request.Context(), req.Text)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/ai/feedback/:employeeId
// body: { "source": "peer", "text": "...", "analyze": true }
func (h *AIHandler) AddFeedback(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	var req services.AddFeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	req.EmployeeID = id
	fb, err := h.career.AddFeedback(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, fb)
}

// GET /api/ai/feedback/summary/:employeeId
func (h *AIHandler) FeedbackSummary(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	out, err := h.career.SummarizeFeedback(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/ai/hipo/:employeeId
func (h *AIHandler) EvaluateHiPo(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	out, err := h.career.EvaluateHighPotential(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/ai/skills/gaps/:employeeId?roleId=
func (h *AIHandler) SkillGaps(c *gin.Context) {
	roleID := strings.TrimSpace(c.Query("roleId"))
	if roleID == "" {
		response.RespondErr(c, apierr.Validation("roleId is required"))
		return
	}
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	out, err := h.career.SkillGaps(c.Request.Context(), id, roleID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/ai/skills/embeddings/roles
func (h *AIHandler) RebuildRoleEmbeddings(c *gin.Context) {
	out, err := h.embeddings.RebuildAllRoleEmbeddings(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/ai/skills/embeddings/learning
func (h *AIHandler) RebuildLearningEmbeddings(c *gin.Context) {
	out, err := h.embeddings.RebuildAllLearningEmbeddings(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/ai/skills/similar?q=&topK=
func (h *AIHandler) FindSimilar(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.RespondErr(c, apierr.Validation("Query parameter q is required"))
		return
	}
	topK := 0
	if raw := c.Query("topK"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondErr(c, apierr.Validation("topK must be a positive integer"))
			return
		}
		topK = n
	}
	out, err := h.embeddings.FindSimilar(c.Request.Context(), services.NewSimilarityQuery(q, topK))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}
