package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

func newCareer(f *fixture, gen Generator) *careerService {
	return NewCareerService(logger.Nop(), f.employees, f.roles, f.items, f.feedback, f.predictions, gen, nil).(*careerService)
}

func TestComputeSkillGaps(t *testing.T) {
	emp := &types.Employee{Skills: datatypes.JSONSlice[types.EmployeeSkill]{
		{Name: "go", Level: 4},
		{Name: "SQL", Level: 1},
	}}
	role := &types.JobRole{RequiredSkills: datatypes.JSONSlice[types.RequiredSkill]{
		{Name: "Go", MinLevel: 3},
		{Name: "sql", MinLevel: 3},
		{Name: "Kubernetes", MinLevel: 2},
	}}
	got := ComputeSkillGaps(emp, role)
	want := []SkillGap{
		{Skill: "Go", RequiredLevel: 3, CurrentLevel: 4, Gap: 0},
		{Skill: "sql", RequiredLevel: 3, CurrentLevel: 1, Gap: 2},
		{Skill: "Kubernetes", RequiredLevel: 2, CurrentLevel: 0, Gap: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got=%+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gap %d=%+v want %+v", i, got[i], want[i])
		}
	}
}

func TestSkillGapsService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
	role := &types.JobRole{RoleID: "R1", Title: "Lead", RequiredSkills: datatypes.JSONSlice[types.RequiredSkill]{{Name: "Go", MinLevel: 3}}}
	if _, err := f.roles.Upsert(dbctx.New(ctx), role); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	svc := newCareer(f, replyWith(""))

	report, err := svc.SkillGaps(ctx, "E1", "R1")
	if err != nil {
		t.Fatalf("SkillGaps: %v", err)
	}
	if report.TargetRoleTitle != "Lead" || len(report.Gaps) != 1 || report.Gaps[0].Gap != 3 {
		t.Fatalf("report=%+v", report)
	}
	if _, err := svc.SkillGaps(ctx, "E1", ""); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("missing role err=%v", err)
	}
	if _, err := svc.SkillGaps(ctx, "E1", "R9"); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("unknown role err=%v", err)
	}
	if _, err := svc.SkillGaps(ctx, "E9", "R1"); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("unknown employee err=%v", err)
	}
}

func TestEvaluateHighPotential(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		months int
		perf   float64
		want   bool
	}{
		{"twelve months", 12, 4, true},
		{"eleven months", 11, 4, false},
		{"performance just under", 24, 3.9, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			joined := now.Add(-time.Duration(tc.months) * monthDuration)
			f.seedEmployee(t, &types.Employee{
				EmployeeID:        "E1",
				DateOfJoining:     &joined,
				PerformanceRating: ptr(tc.perf),
				PotentialRating:   ptr(4.5),
			})
			svc := newCareer(f, replyWith(""))
			svc.now = func() time.Time { return now }

			res, err := svc.EvaluateHighPotential(ctx, "E1")
			if err != nil {
				t.Fatalf("EvaluateHighPotential: %v", err)
			}
			if res.HighPotential != tc.want {
				t.Fatalf("hipo=%v want %v (%+v)", res.HighPotential, tc.want, res)
			}
			emp, _ := f.employees.GetByEmployeeID(dbctx.New(ctx), "E1")
			if emp.HighPotentialFlag != tc.want {
				t.Fatalf("stored flag=%v", emp.HighPotentialFlag)
			}
			preds, _ := f.predictions.ListByEmployee(dbctx.New(ctx), "E1", types.PredictionHiPo)
			if len(preds) != 1 || preds[0].ModelVersion != types.ModelHiPoRules {
				t.Fatalf("preds=%+v", preds)
			}
		})
	}
}

func TestRecommendCareerPaths(t *testing.T) {
	ctx := context.Background()

	t.Run("parsed", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
		svc := newCareer(f, replyWith("```json\n{\"paths\":[{\"roleId\":\"R1\",\"title\":\"Lead\",\"reason\":\"fit\"}]}\n```"))
		got, err := svc.RecommendCareerPaths(ctx, "E1")
		if err != nil {
			t.Fatalf("RecommendCareerPaths: %v", err)
		}
		if !got.OK() || len(got.Value.Paths) != 1 || got.Value.Learning == nil {
			t.Fatalf("got=%+v", got)
		}
	})

	t.Run("non-array fields coerced", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
		svc := newCareer(f, replyWith(`{"paths":"none yet","learning":[{"itemId":"L1","title":"Go Basics","reason":"closes Go gap"}]}`))
		got, err := svc.RecommendCareerPaths(ctx, "E1")
		if err != nil {
			t.Fatalf("RecommendCareerPaths: %v", err)
		}
		if !got.OK() {
			t.Fatalf("expected parsed value, got rawText %q", got.RawText)
		}
		if got.Value.Paths == nil || len(got.Value.Paths) != 0 {
			t.Fatalf("paths=%+v want empty", got.Value.Paths)
		}
		if len(got.Value.Learning) != 1 || got.Value.Learning[0].ItemID != "L1" {
			t.Fatalf("learning=%+v", got.Value.Learning)
		}
	})

	t.Run("raw text fallback", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
		svc := newCareer(f, replyWith("Consider a lead role."))
		got, err := svc.RecommendCareerPaths(ctx, "E1")
		if err != nil {
			t.Fatalf("RecommendCareerPaths: %v", err)
		}
		if got.OK() || got.RawText != "Consider a lead role." {
			t.Fatalf("got=%+v", got)
		}
	})

	t.Run("generator failure surfaces", func(t *testing.T) {
		f := newFixture(t)
		f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
		svc := newCareer(f, failWith(apierr.Upstream(errors.New("500"), "gemini")))
		if _, err := svc.RecommendCareerPaths(ctx, "E1"); !errors.Is(err, apierr.ErrUpstream) {
			t.Fatalf("err=%v", err)
		}
	})
}

func TestFeedbackFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedEmployee(t, &types.Employee{EmployeeID: "E1"})
	gen := &fakeGenerator{fn: func(system, input string) (string, error) {
		if system == feedbackAnalyzeSystemPrompt {
			return `{"sentimentScore": -0.4, "topics": ["workload"]}`, nil
		}
		if !strings.Contains(input, "1. [peer]: Too many late nights") {
			t.Errorf("summary prompt missing feedback line: %q", input)
		}
		return "- Workload concerns", nil
	}}
	svc := newCareer(f, gen)

	summary, err := svc.SummarizeFeedback(ctx, "E1")
	if err != nil {
		t.Fatalf("empty summary: %v", err)
	}
	if summary.Summary != noFeedbackSummary || gen.calls.Load() != 0 {
		t.Fatalf("summary=%q calls=%d", summary.Summary, gen.calls.Load())
	}

	fb, err := svc.AddFeedback(ctx, AddFeedbackInput{EmployeeID: "E1", Source: "Peer", Text: "Too many late nights", Analyze: true})
	if err != nil {
		t.Fatalf("AddFeedback: %v", err)
	}
	if fb.SentimentScore == nil || *fb.SentimentScore != -0.4 || len(fb.Topics) != 1 {
		t.Fatalf("feedback=%+v", fb)
	}

	summary, err = svc.SummarizeFeedback(ctx, "E1")
	if err != nil {
		t.Fatalf("SummarizeFeedback: %v", err)
	}
	if summary.Summary != "- Workload concerns" {
		t.Fatalf("summary=%q", summary.Summary)
	}

	if _, err := svc.AddFeedback(ctx, AddFeedbackInput{EmployeeID: "E1", Text: " "}); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("blank text err=%v", err)
	}
	if _, err := svc.AddFeedback(ctx, AddFeedbackInput{EmployeeID: "E1", Source: "gossip", Text: "x"}); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("bad source err=%v", err)
	}
}

func TestParseCareerRecommendation(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		ok        bool
		paths     int
		learnings int
	}{
		{"both arrays", `{"paths":[{"roleId":"R1"}],"learning":[{"itemId":"L1"},{"itemId":"L2"}]}`, true, 1, 2},
		{"missing fields", `{}`, true, 0, 0},
		{"null fields", `{"paths":null,"learning":null}`, true, 0, 0},
		{"object instead of array", `{"paths":{"roleId":"R1"},"learning":[]}`, true, 0, 0},
		{"bad entries dropped", `{"paths":[{"roleId":"R1"},"R2",null,{"roleId":3}],"learning":[]}`, true, 1, 0},
		{"prose", "Try the lead track.", false, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCareerRecommendation(tc.raw)
			if got.OK() != tc.ok {
				t.Fatalf("OK=%v want %v", got.OK(), tc.ok)
			}
			if !tc.ok {
				if got.RawText != tc.raw {
					t.Fatalf("rawText=%q", got.RawText)
				}
				return
			}
			if got.Value.Paths == nil || got.Value.Learning == nil {
				t.Fatalf("lists must be non-nil: %+v", got.Value)
			}
			if len(got.Value.Paths) != tc.paths || len(got.Value.Learning) != tc.learnings {
				t.Fatalf("paths=%d learning=%d want %d/%d", len(got.Value.Paths), len(got.Value.Learning), tc.paths, tc.learnings)
			}
		})
	}
}
