package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/http/response"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/services"
)

type EmployeeHandler struct {
	employees services.EmployeeService
}

func NewEmployeeHandler(employees services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// GET /api/employees?departmentId=&managerId=&status=
func (h *EmployeeHandler) List(c *gin.Context) {
	out, err := h.employees.List(c.Request.Context(), repos.EmployeeFilter{
		DepartmentID: c.Query("departmentId"),
		ManagerID:    c.Query("managerId"),
		Status:       c.Query("status"),
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/employees/:employeeId
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	emp, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, emp)
}

// POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req types.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	emp, err := h.employees.Create(c.Request.Context(), &req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, emp)
}

// PUT /api/employees/:employeeId
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := employeeParam(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		response.RespondErr(c, apierr.Validation("invalid employee body"))
		return
	}
	emp, err := h.employees.Update(c.Request.Context(), id, body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, emp)
}
