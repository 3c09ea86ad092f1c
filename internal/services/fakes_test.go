package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	"github.com/yungbote/talent-analytics-backend/internal/data/repos/testutil"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type fakeGenerator struct {
	calls atomic.Int32
	fn    func(system, input string) (string, error)
}

func (g *fakeGenerator) Generate(_ context.Context, system, input string) (string, error) {
	g.calls.Add(1)
	if g.fn == nil {
		return "", nil
	}
	return g.fn(system, input)
}

func replyWith(out string) *fakeGenerator {
	return &fakeGenerator{fn: func(string, string) (string, error) { return out, nil }}
}

func failWith(err error) *fakeGenerator {
	return &fakeGenerator{fn: func(string, string) (string, error) { return "", err }}
}

type fakeEmbedder struct {
	calls atomic.Int32
	fn    func(text string) ([]float32, error)
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	if e.fn == nil {
		return []float32{1, 0}, nil
	}
	return e.fn(text)
}

type fakeOracle struct {
	p   float64
	err error
}

func (o fakeOracle) PredictAttrition(context.Context, types.AttritionFeatures) (float64, error) {
	return o.p, o.err
}

type fixture struct {
	employees   repos.EmployeeRepo
	feedback    repos.FeedbackRepo
	roles       repos.JobRoleRepo
	items       repos.LearningItemRepo
	embeddings  repos.SkillEmbeddingRepo
	predictions repos.PredictionRepo
	assessments repos.ManagerAssessmentRepo
	snapshots   repos.WorkforceSnapshotRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SQLiteDB(t)
	log := logger.Nop()
	return &fixture{
		employees:   repos.NewEmployeeRepo(db, log),
		feedback:    repos.NewFeedbackRepo(db, log),
		roles:       repos.NewJobRoleRepo(db, log),
		items:       repos.NewLearningItemRepo(db, log),
		embeddings:  repos.NewSkillEmbeddingRepo(db, log),
		predictions: repos.NewPredictionRepo(db, log),
		assessments: repos.NewManagerAssessmentRepo(db, log),
		snapshots:   repos.NewWorkforceSnapshotRepo(db, log),
	}
}

func (f *fixture) seedEmployee(t *testing.T, emp *types.Employee) *types.Employee {
	t.Helper()
	if emp.Email == "" {
		emp.Email = emp.EmployeeID + "@example.com"
	}
	if emp.Name == "" {
		emp.Name = "Employee " + emp.EmployeeID
	}
	out, err := f.employees.Create(dbctx.New(context.Background()), emp)
	if err != nil {
		t.Fatalf("seed employee %s: %v", emp.EmployeeID, err)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
