package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/domain/people"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const employeeListLimit = 200

type EmployeeService interface {
	List(ctx context.Context, f repos.EmployeeFilter) ([]*types.Employee, error)
	Get(ctx context.Context, employeeID string) (*types.Employee, error)
	Create(ctx context.Context, emp *types.Employee) (*types.Employee, error)
	// Update overlays a JSON document on the stored employee.
	Update(ctx context.Context, employeeID string, patch json.RawMessage) (*types.Employee, error)
}

type employeeService struct {
	log       *logger.Logger
	employees repos.EmployeeRepo
}

func NewEmployeeService(log *logger.Logger, employees repos.EmployeeRepo) EmployeeService {
	return &employeeService{
		log:       log.With("service", "EmployeeService"),
		employees: employees,
	}
}

func (s *employeeService) List(ctx context.Context, f repos.EmployeeFilter) ([]*types.Employee, error) {
	if f.Status != "" && !people.ValidStatus(f.Status) {
		return nil, apierr.Validation("invalid status filter")
	}
	f.Limit = employeeListLimit
	out, err := s.employees.List(dbctx.New(ctx), f)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

func (s *employeeService) Get(ctx context.Context, employeeID string) (*types.Employee, error) {
	emp, err := s.employees.GetByEmployeeID(dbctx.New(ctx), employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, apierr.NotFound("Employee not found")
	}
	return emp, nil
}

func validateEmployee(emp *types.Employee) error {
	switch {
	case strings.TrimSpace(emp.EmployeeID) == "":
		return apierr.Validation("employeeId is required")
	case strings.TrimSpace(emp.Name) == "":
		return apierr.Validation("name is required")
	case strings.TrimSpace(emp.Email) == "":
		return apierr.Validation("email is required")
	case emp.Status != "" && !people.ValidStatus(emp.Status):
		return apierr.Validation("invalid status")
	}
	return nil
}

func (s *employeeService) Create(ctx context.Context, emp *types.Employee) (*types.Employee, error) {
	if emp == nil {
		return nil, apierr.Validation("employee body is required")
	}
	if err := validateEmployee(emp); err != nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	existing, err := s.employees.GetByEmployeeID(dbc, emp.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("check employee: %w", err)
	}
	if existing != nil {
		return nil, apierr.Validation("employeeId already exists")
	}
	// Risk fields are owned by scoring.
	emp.ID = uuid.Nil
	emp.AttritionRiskScore = nil
	emp.AttritionRiskBand = nil
	emp.HighPotentialFlag = false

	out, err := s.employees.Create(dbc, emp)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.log.Info("employee created", "employee_id", out.EmployeeID)
	return out, nil
}

func (s *employeeService) Update(ctx context.Context, employeeID string, patch json.RawMessage) (*types.Employee, error) {
	dbc := dbctx.New(ctx)
	emp, err := s.employees.GetByEmployeeID(dbc, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, apierr.NotFound("Employee not found")
	}

	id, key := emp.ID, emp.EmployeeID
	score, band, hipo := emp.AttritionRiskScore, emp.AttritionRiskBand, emp.HighPotentialFlag
	if err := json.Unmarshal(patch, emp); err != nil {
		return nil, apierr.Validation("invalid employee body")
	}
	emp.ID, emp.EmployeeID = id, key
	emp.AttritionRiskScore, emp.AttritionRiskBand, emp.HighPotentialFlag = score, band, hipo
	if err := validateEmployee(emp); err != nil {
		return nil, err
	}
	if err := s.employees.Save(dbc, emp); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return emp, nil
}
