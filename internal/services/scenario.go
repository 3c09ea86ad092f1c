package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const unassignedDepartment = "UNASSIGNED"

type DepartmentImpact struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}

type ScenarioResult struct {
	TotalAtRisk        int                          `json:"totalAtRisk"`
	ImpactByDepartment map[string]*DepartmentImpact `json:"impactByDepartment"`
	Explanation        string                       `json:"explanation"`
}

type ScenarioService interface {
	RunAttritionScenario(ctx context.Context, employeeIDs []string) (*ScenarioResult, error)
}

type scenarioService struct {
	log       *logger.Logger
	employees repos.EmployeeRepo
	gen       Generator
}

func NewScenarioService(log *logger.Logger, employees repos.EmployeeRepo, gen Generator) ScenarioService {
	return &scenarioService{
		log:       log.With("service", "ScenarioService"),
		employees: employees,
		gen:       gen,
	}
}

// GroupImpact buckets the leavers by department, blank departments under UNASSIGNED.
func GroupImpact(emps []*types.Employee) map[string]*DepartmentImpact {
	out := map[string]*DepartmentImpact{}
	for _, e := range emps {
		dept := e.DepartmentID
		if dept == "" {
			dept = unassignedDepartment
		}
		entry, ok := out[dept]
		if !ok {
			entry = &DepartmentImpact{Names: []string{}}
			out[dept] = entry
		}
		entry.Count++
		entry.Names = append(entry.Names, e.Name)
	}
	return out
}

func (s *scenarioService) RunAttritionScenario(ctx context.Context, employeeIDs []string) (*ScenarioResult, error) {
	if len(employeeIDs) == 0 {
		return nil, apierr.Validation("employeeIds array is required")
	}
	emps, err := s.employees.GetByEmployeeIDs(dbctx.New(ctx), employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("load scenario employees: %w", err)
	}

	explanation, err := s.gen.Generate(ctx, scenarioSystemPrompt, scenarioPrompt(emps))
	if err != nil {
		s.log.Warn("scenario explanation failed", "employees", len(emps), "error", err)
		observability.Current().IncFallback("scenario", "generator_error")
		explanation = ""
	}
	return &ScenarioResult{
		TotalAtRisk:        len(emps),
		ImpactByDepartment: GroupImpact(emps),
		Explanation:        explanation,
	}, nil
}

func scenarioPrompt(emps []*types.Employee) string {
	var b strings.Builder
	b.WriteString("The following employees are assumed to leave:\n")
	for _, e := range emps {
		fmt.Fprintf(&b, "- %s (dept: %s, role: %s)\n", e.Name, orNA(e.DepartmentID), orNA(e.RoleID))
	}
	b.WriteString("\nSummarize the impact for HR and suggest mitigation actions.")
	return b.String()
}
