package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

func TestScoreEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("persists score band and explanation", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1", Name: "Ada"})
		gen := replyWith("Ada shows elevated risk.")
		svc := NewAttritionService(logger.Nop(), f.employees, f.predictions, fakeOracle{p: 0.82}, gen, nil)

		res, err := svc.ScoreEmployee(ctx, "E1")
		if err != nil {
			t.Fatalf("ScoreEmployee: %v", err)
		}
		if res.Band != BandHigh || res.Score != 0.82 || res.Explanation != "Ada shows elevated risk." {
			t.Fatalf("res=%+v", res)
		}
		emp, _ := f.employees.GetByEmployeeID(dbctx.New(ctx), "E1")
		if emp.AttritionRiskBand == nil || *emp.AttritionRiskBand != BandHigh {
			t.Fatalf("employee band not updated: %+v", emp.AttritionRiskBand)
		}
		preds, err := svc.ListPredictions(ctx, "E1")
		if err != nil || len(preds) != 1 {
			t.Fatalf("preds=%v err=%v", preds, err)
		}
		if preds[0].ModelVersion != types.ModelAttrition || preds[0].Type != types.PredictionAttrition {
			t.Fatalf("pred=%+v", preds[0])
		}
	})

	t.Run("generator failure falls back to fixed sentence", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
		svc := NewAttritionService(logger.Nop(), f.employees, f.predictions, fakeOracle{p: 0.5}, failWith(errors.New("down")), nil)

		res, err := svc.ScoreEmployee(ctx, "E1")
		if err != nil {
			t.Fatalf("ScoreEmployee: %v", err)
		}
		want := "Risk band: medium. Score: 50%."
		if !strings.HasPrefix(res.Explanation, want) {
			t.Fatalf("explanation=%q", res.Explanation)
		}
	})

	t.Run("empty generator output falls back", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
		svc := NewAttritionService(logger.Nop(), f.employees, f.predictions, fakeOracle{p: 0.1}, replyWith("  "), nil)

		res, err := svc.ScoreEmployee(ctx, "E1")
		if err != nil {
			t.Fatalf("ScoreEmployee: %v", err)
		}
		if res.Explanation != FallbackExplanation(0.1, BandLow) {
			t.Fatalf("explanation=%q", res.Explanation)
		}
	})

	t.Run("oracle failure is upstream", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
		oracle := fakeOracle{err: apierr.Upstream(errors.New("503"), "ml service")}
		svc := NewAttritionService(logger.Nop(), f.employees, f.predictions, oracle, replyWith("x"), nil)

		_, err := svc.ScoreEmployee(ctx, "E1")
		if !errors.Is(err, apierr.ErrUpstream) {
			t.Fatalf("err=%v want upstream", err)
		}
		preds, _ := f.predictions.ListByEmployee(dbctx.New(ctx), "E1", "")
		if len(preds) != 0 {
			t.Fatalf("no prediction should be stored, got %d", len(preds))
		}
	})

	t.Run("missing employee", func(t *testing.T) {
		f := newFixture(t)
		svc := NewAttritionService(logger.Nop(), f.employees, f.predictions, fakeOracle{p: 0.5}, replyWith("x"), nil)
		if _, err := svc.ScoreEmployee(ctx, "nope"); !errors.Is(err, apierr.ErrNotFound) {
			t.Fatalf("err=%v want not found", err)
		}
	})
}

func TestScoreManyReportsPerItemErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
	f.seedEmployee(t, &types.Employee{EmployeeID: "E2"})
	svc := NewAttritionService(logger.Nop(), f.employees, f.predictions, fakeOracle{p: 0.3}, replyWith("ok"), nil)

	out, err := svc.ScoreMany(ctx, []string{"E1", "missing", "E2"})
	if err != nil {
		t.Fatalf("ScoreMany: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len=%d", len(out))
	}
	if out[0].Result == nil || out[2].Result == nil {
		t.Fatalf("expected results for E1 and E2: %+v", out)
	}
	if out[1].EmployeeID != "missing" || out[1].Error == "" || out[1].Result != nil {
		t.Fatalf("expected error for missing: %+v", out[1])
	}

	if _, err := svc.ScoreMany(ctx, nil); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("empty batch err=%v", err)
	}
}
