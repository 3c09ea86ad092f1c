package services

import (
	"context"
	"errors"
	"testing"
	"time"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const managerReply = "```json\n" + `{
  "factors": {"positive": ["Strong delivery"], "negative": ["Low engagement"]},
  "explanation": "Solid team with engagement risk.",
  "suggestedInterventions": [{"action": "Conduct Stay Interviews", "predictedScore": 70, "explanation": "Surfaces concerns early."}]
}` + "\n```"

func TestComputeTeamMetricsAndCompositeScore(t *testing.T) {
	reports := []*types.Employee{
		{PerformanceRating: ptr(4.0), EngagementScore: ptr(4.0)},
		{PerformanceRating: ptr(0.0), EngagementScore: ptr(2.0), AttritionRiskBand: ptr(BandHigh)},
	}
	m := ComputeTeamMetrics(reports)
	if m.TeamSize != 2 || m.AveragePerformance != 3.5 || m.AverageEngagement != 3 || m.RetentionRate != 50 {
		t.Fatalf("metrics=%+v", m)
	}
	// 3.5/5*40 + 3/100*30 + 50/100*30 = 28 + 0.9 + 15
	if got := CompositeScore(m); got != 44 {
		t.Fatalf("score=%d want 44", got)
	}

	cases := []struct {
		name string
		m    types.AssessmentMetrics
		want int
	}{
		{"zero", types.AssessmentMetrics{}, 0},
		{"perfect", types.AssessmentMetrics{AveragePerformance: 5, AverageEngagement: 100, RetentionRate: 100}, 100},
		{"clamped", types.AssessmentMetrics{AveragePerformance: 10, AverageEngagement: 400, RetentionRate: 100}, 100},
	}
	for _, tc := range cases {
		if got := CompositeScore(tc.m); got != tc.want {
			t.Fatalf("%s: score=%d want %d", tc.name, got, tc.want)
		}
	}
}

func seedTeam(t *testing.T, f *fixture) {
	t.Helper()
	f.seedEmployee(t, &types.Employee{EmployeeID: "M1", Name: "Grace", DepartmentID: "ENG"})
	f.seedEmployee(t, &types.Employee{EmployeeID: "E1", ManagerID: "M1", PerformanceRating: ptr(4.0), EngagementScore: ptr(4.0)})
	f.seedEmployee(t, &types.Employee{EmployeeID: "E2", ManagerID: "M1", PerformanceRating: ptr(3.0), EngagementScore: ptr(3.0)})
}

func TestGetAssessmentCaching(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedTeam(t, f)
	gen := replyWith(managerReply)
	svc := NewManagerService(logger.Nop(), f.employees, f.assessments, gen, nil, 0)

	first, err := svc.GetAssessment(ctx, "M1", false)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.AIAnalysis != "Solid team with engagement risk." || len(first.SuggestedInterventions) != 1 {
		t.Fatalf("first=%+v", first)
	}
	if got := first.Factors.Data(); len(got.Positive) != 1 || len(got.Negative) != 1 {
		t.Fatalf("factors=%+v", got)
	}

	cached, err := svc.GetAssessment(ctx, "M1", false)
	if err != nil {
		t.Fatalf("cached: %v", err)
	}
	if cached.ID != first.ID {
		t.Fatalf("cached id=%s want %s", cached.ID, first.ID)
	}
	if gen.calls.Load() != 1 {
		t.Fatalf("generator calls=%d want 1", gen.calls.Load())
	}

	forced, err := svc.GetAssessment(ctx, "M1", true)
	if err != nil {
		t.Fatalf("forced: %v", err)
	}
	if forced.ID == first.ID {
		t.Fatalf("forced refresh reused %s", forced.ID)
	}

	history, err := svc.AssessmentHistory(ctx, "M1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history=%d want 2", len(history))
	}
}

func TestGetAssessmentErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedEmployee(t, &types.Employee{EmployeeID: "M2"})
	svc := NewManagerService(logger.Nop(), f.employees, f.assessments, replyWith(managerReply), nil, 0)

	_, err := svc.GetAssessment(ctx, "M2", false)
	if !errors.Is(err, apierr.ErrNoDirectReports) {
		t.Fatalf("err=%v want no direct reports", err)
	}
	if errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("no direct reports must not read as not found")
	}
	if apierr.StatusOf(err) != 422 {
		t.Fatalf("status=%d", apierr.StatusOf(err))
	}

	_, err = svc.GetAssessment(ctx, "ghost", false)
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("err=%v want not found", err)
	}
}

func TestGetAssessmentGeneratorFallback(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"generator error", failWith(errors.New("quota"))},
		{"unparsable", replyWith("{not json}")},
		{"prose without json", replyWith("The team looks healthy overall.")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			seedTeam(t, f)
			svc := NewManagerService(logger.Nop(), f.employees, f.assessments, tc.gen, nil, 0)
			got, err := svc.GetAssessment(context.Background(), "M1", true)
			if err != nil {
				t.Fatalf("GetAssessment: %v", err)
			}
			if got.AIAnalysis != "AI analysis unavailable." {
				t.Fatalf("analysis=%q", got.AIAnalysis)
			}
			factors := got.Factors.Data()
			if len(factors.Positive) != 0 || len(factors.Negative) != 0 || len(got.SuggestedInterventions) != 0 {
				t.Fatalf("expected empty analysis, got %+v", got)
			}
			if got.OverallScore == 0 {
				t.Fatalf("score should still be computed")
			}
		})
	}
}

func TestGetAssessmentMissingFieldsBecomeEmpty(t *testing.T) {
	f := newFixture(t)
	seedTeam(t, f)
	svc := NewManagerService(logger.Nop(), f.employees, f.assessments, replyWith(`{"explanation":"ok"}`), nil, 0)
	got, err := svc.GetAssessment(context.Background(), "M1", false)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if got.AIAnalysis != "ok" || got.Factors.Data().Positive == nil || got.SuggestedInterventions == nil {
		t.Fatalf("got=%+v", got)
	}
}

func TestGetAssessmentFreshnessWindow(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		advance time.Duration
		reuse   bool
	}{
		{"inside window", 23 * time.Hour, true},
		{"expired", 25 * time.Hour, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			seedTeam(t, f)
			gen := replyWith(managerReply)
			svc := NewManagerService(logger.Nop(), f.employees, f.assessments, gen, nil, 0).(*managerService)
			svc.now = func() time.Time { return base }

			first, err := svc.GetAssessment(ctx, "M1", false)
			if err != nil {
				t.Fatalf("first: %v", err)
			}
			if !first.CreatedAt.Equal(base) {
				t.Fatalf("createdAt=%s want %s", first.CreatedAt, base)
			}

			svc.now = func() time.Time { return base.Add(tc.advance) }
			again, err := svc.GetAssessment(ctx, "M1", false)
			if err != nil {
				t.Fatalf("again: %v", err)
			}
			if (again.ID == first.ID) != tc.reuse {
				t.Fatalf("reuse=%v want %v (ids %s, %s)", again.ID == first.ID, tc.reuse, first.ID, again.ID)
			}
			wantCalls := int32(2)
			if tc.reuse {
				wantCalls = 1
			}
			if gen.calls.Load() != wantCalls {
				t.Fatalf("generator calls=%d want %d", gen.calls.Load(), wantCalls)
			}
		})
	}
}

func TestGetAssessmentToleratesLooseTypes(t *testing.T) {
	reply := `{
  "factors": {"positive": ["Clear goals", 7], "negative": "none"},
  "explanation": "Healthy team.",
  "suggestedInterventions": [
    {"action": "Leadership Training", "predictedScore": "72", "explanation": "Builds coaching skills."},
    {"action": "Reduce Team Size", "predictedScore": "a lot"},
    {"predictedScore": 80},
    {"action": "Stay Interviews", "predictedScore": 68.5}
  ]
}`
	f := newFixture(t)
	seedTeam(t, f)
	svc := NewManagerService(logger.Nop(), f.employees, f.assessments, replyWith(reply), nil, 0)
	got, err := svc.GetAssessment(context.Background(), "M1", true)
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if got.AIAnalysis != "Healthy team." {
		t.Fatalf("analysis=%q", got.AIAnalysis)
	}
	factors := got.Factors.Data()
	if len(factors.Positive) != 1 || factors.Positive[0] != "Clear goals" || factors.Negative == nil || len(factors.Negative) != 0 {
		t.Fatalf("factors=%+v", factors)
	}
	if len(got.SuggestedInterventions) != 2 {
		t.Fatalf("interventions=%+v", got.SuggestedInterventions)
	}
	if iv := got.SuggestedInterventions[0]; iv.Action != "Leadership Training" || iv.PredictedScore != 72 {
		t.Fatalf("first intervention=%+v", iv)
	}
	if iv := got.SuggestedInterventions[1]; iv.Action != "Stay Interviews" || iv.PredictedScore != 68.5 || iv.Explanation != "" {
		t.Fatalf("second intervention=%+v", iv)
	}
}
