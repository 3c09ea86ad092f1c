package people

import (
	"context"
	"testing"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos/testutil"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

func seed(t *testing.T, repo EmployeeRepo, emps ...*types.Employee) {
	t.Helper()
	dbc := dbctx.New(context.Background())
	for _, e := range emps {
		if _, err := repo.Create(dbc, e); err != nil {
			t.Fatalf("create %s: %v", e.EmployeeID, err)
		}
	}
}

func TestEmployeeRepoGetMissingReturnsNil(t *testing.T) {
	repo := NewEmployeeRepo(testutil.SQLiteDB(t), logger.Nop())
	got, err := repo.GetByEmployeeID(dbctx.New(context.Background()), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestEmployeeRepoRiskAggregates(t *testing.T) {
	repo := NewEmployeeRepo(testutil.SQLiteDB(t), logger.Nop())
	dbc := dbctx.New(context.Background())
	seed(t, repo,
		&types.Employee{EmployeeID: "E1", Name: "A", Email: "a@x.io", DepartmentID: "ENG"},
		&types.Employee{EmployeeID: "E2", Name: "B", Email: "b@x.io", DepartmentID: "ENG"},
		&types.Employee{EmployeeID: "E3", Name: "C", Email: "c@x.io", DepartmentID: "OPS"},
		&types.Employee{EmployeeID: "E4", Name: "D", Email: "d@x.io", DepartmentID: "OPS", Status: types.StatusResigned},
	)
	if err := repo.UpdateRisk(dbc, "E1", 0.8, "high"); err != nil {
		t.Fatalf("update risk: %v", err)
	}
	if err := repo.UpdateRisk(dbc, "E3", 0.2, "low"); err != nil {
		t.Fatalf("update risk: %v", err)
	}

	e1, err := repo.GetByEmployeeID(dbc, "E1")
	if err != nil || e1 == nil {
		t.Fatalf("get E1: %v", err)
	}
	if e1.AttritionRiskBand == nil || *e1.AttritionRiskBand != "high" || *e1.AttritionRiskScore != 0.8 {
		t.Fatalf("risk not persisted: %+v", e1)
	}

	heads, err := repo.CountActiveByDepartment(dbc)
	if err != nil {
		t.Fatalf("headcount: %v", err)
	}
	if len(heads) != 2 || heads[0].DepartmentID != "ENG" || heads[0].Count != 2 || heads[1].Count != 1 {
		t.Fatalf("unexpected headcount: %+v", heads)
	}

	bands, err := repo.CountByBand(dbc)
	if err != nil {
		t.Fatalf("bands: %v", err)
	}
	var nilBand int64
	for _, b := range bands {
		if b.Band == nil {
			nilBand = b.Count
		}
	}
	if nilBand != 2 {
		t.Fatalf("expected 2 unscored employees, got %d (%+v)", nilBand, bands)
	}

	byDept, err := repo.CountActiveBandByDepartment(dbc)
	if err != nil {
		t.Fatalf("by dept: %v", err)
	}
	if len(byDept) != 2 {
		t.Fatalf("expected 2 dept/band groups, got %+v", byDept)
	}

	active, err := repo.ListActiveRisk(dbc, "OPS")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 1 || active[0].EmployeeID != "E3" {
		t.Fatalf("unexpected active list: %+v", active)
	}
}

func TestFeedbackRepoDefaultsSource(t *testing.T) {
	repo := NewFeedbackRepo(testutil.SQLiteDB(t), logger.Nop())
	dbc := dbctx.New(context.Background())
	if _, err := repo.Create(dbc, &types.Feedback{EmployeeID: "E1", Text: "great mentor"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.ListByEmployee(dbc, "E1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Source != "other" {
		t.Fatalf("unexpected feedback: %+v", got)
	}
}
