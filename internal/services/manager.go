package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const (
	DefaultAssessmentFreshness = 24 * time.Hour
	aiAnalysisUnavailable      = "AI analysis unavailable."
)

type ManagerService interface {
	GetAssessment(ctx context.Context, managerID string, forceRefresh bool) (*types.ManagerAssessment, error)
	AssessmentHistory(ctx context.Context, managerID string) ([]*types.ManagerAssessment, error)
}

type managerService struct {
	log         *logger.Logger
	employees   repos.EmployeeRepo
	assessments repos.ManagerAssessmentRepo
	gen         Generator
	notifier    EventNotifier
	freshness   time.Duration
	now         clock
}

func NewManagerService(
	log *logger.Logger,
	employees repos.EmployeeRepo,
	assessments repos.ManagerAssessmentRepo,
	gen Generator,
	notifier EventNotifier,
	freshness time.Duration,
) ManagerService {
	if freshness <= 0 {
		freshness = DefaultAssessmentFreshness
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &managerService{
		log:         log.With("service", "ManagerService"),
		employees:   employees,
		assessments: assessments,
		gen:         gen,
		notifier:    notifier,
		freshness:   freshness,
		now:         systemClock,
	}
}

// ComputeTeamMetrics summarizes direct reports. Performance of nil or 0 counts as 3.
// Engagement averages the stored value as-is and is read downstream on a 0-100 scale.
func ComputeTeamMetrics(reports []*types.Employee) types.AssessmentMetrics {
	n := len(reports)
	if n == 0 {
		return types.AssessmentMetrics{}
	}
	var perf, eng float64
	retained := 0
	for _, e := range reports {
		p := floatOr(e.PerformanceRating, 0)
		if p == 0 {
			p = 3
		}
		perf += p
		eng += floatOr(e.EngagementScore, 0)
		if e.AttritionRiskBand == nil || *e.AttritionRiskBand == "" || *e.AttritionRiskBand == BandLow {
			retained++
		}
	}
	return types.AssessmentMetrics{
		TeamSize:           n,
		AveragePerformance: perf / float64(n),
		AverageEngagement:  eng / float64(n),
		RetentionRate:      float64(retained) / float64(n) * 100,
	}
}

// CompositeScore weights performance 40, engagement 30 and retention 30 into 0..100.
func CompositeScore(m types.AssessmentMetrics) int {
	raw := m.AveragePerformance/5*40 + m.AverageEngagement/100*30 + m.RetentionRate/100*30
	return int(math.Round(math.Min(100, math.Max(0, raw))))
}

type managerAnalysis struct {
	Factors                types.AssessmentFactors
	Explanation            string
	SuggestedInterventions []types.Intervention
}

// parseManagerAnalysis decodes the generator reply field by field. Fields of the wrong type
// become empty, and interventions without an action or a numeric predictedScore are dropped.
// ok is false only when the reply holds no JSON object.
func parseManagerAnalysis(raw string) (managerAnalysis, bool) {
	body := ExtractJSONObject(raw)
	if body == "" {
		return managerAnalysis{}, false
	}
	var fields struct {
		Factors                json.RawMessage `json:"factors"`
		Explanation            json.RawMessage `json:"explanation"`
		SuggestedInterventions json.RawMessage `json:"suggestedInterventions"`
	}
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return managerAnalysis{}, false
	}
	var factors struct {
		Positive json.RawMessage `json:"positive"`
		Negative json.RawMessage `json:"negative"`
	}
	_ = json.Unmarshal(fields.Factors, &factors)

	out := managerAnalysis{
		Factors: types.AssessmentFactors{
			Positive: LenientArray[string](factors.Positive),
			Negative: LenientArray[string](factors.Negative),
		},
		Explanation:            LenientString(fields.Explanation),
		SuggestedInterventions: []types.Intervention{},
	}
	for _, item := range LenientArray[map[string]json.RawMessage](fields.SuggestedInterventions) {
		action := strings.TrimSpace(LenientString(item["action"]))
		score, ok := LenientFloat(item["predictedScore"])
		if action == "" || !ok {
			continue
		}
		out.SuggestedInterventions = append(out.SuggestedInterventions, types.Intervention{
			Action:         action,
			PredictedScore: score,
			Explanation:    LenientString(item["explanation"]),
		})
	}
	return out, true
}

func (s *managerService) GetAssessment(ctx context.Context, managerID string, forceRefresh bool) (*types.ManagerAssessment, error) {
	if !forceRefresh {
		cached, err := s.assessments.LatestSince(dbctx.New(ctx), managerID, s.now().Add(-s.freshness))
		if err != nil {
			return nil, fmt.Errorf("load cached assessment: %w", err)
		}
		if cached != nil {
			observability.Current().IncAssessmentCache("hit")
			return cached, nil
		}
	}
	observability.Current().IncAssessmentCache("miss")
	return s.assess(ctx, managerID)
}

func (s *managerService) assess(ctx context.Context, managerID string) (out *types.ManagerAssessment, err error) {
	ctx, span := observability.StartSpan(ctx, "manager.assess", attribute.String("manager_id", managerID))
	defer func() { observability.EndSpan(span, err) }()

	dbc := dbctx.New(ctx)
	manager, err := s.employees.GetByEmployeeID(dbc, managerID)
	if err != nil {
		return nil, fmt.Errorf("load manager: %w", err)
	}
	if manager == nil {
		return nil, apierr.NotFound("manager not found")
	}
	reports, err := s.employees.ListByManager(dbc, managerID)
	if err != nil {
		return nil, fmt.Errorf("load direct reports: %w", err)
	}
	if len(reports) == 0 {
		return nil, apierr.NoDirectReports("This employee has no direct reports.")
	}

	metrics := ComputeTeamMetrics(reports)
	overall := CompositeScore(metrics)
	analysis := s.analyze(ctx, manager, metrics, overall)

	now := s.now()
	row := &types.ManagerAssessment{
		ManagerID:              managerID,
		Date:                   now,
		OverallScore:           overall,
		Metrics:                datatypes.NewJSONType(metrics),
		Factors:                datatypes.NewJSONType(analysis.Factors),
		AIAnalysis:             analysis.Explanation,
		SuggestedInterventions: datatypes.JSONSlice[types.Intervention](analysis.SuggestedInterventions),
		CreatedAt:              now,
	}
	if _, err := s.assessments.Create(dbc, row); err != nil {
		return nil, fmt.Errorf("store assessment: %w", err)
	}
	s.notifier.Notify(ctx, redis.Event{
		Type:      EventManagerAssessmentCreated,
		ManagerID: managerID,
		Payload:   map[string]any{"overallScore": overall, "assessmentId": row.ID.String()},
	})
	return row, nil
}

// analyze asks the generator for factors and interventions. Any failure yields the
// "unavailable" placeholder with empty lists.
func (s *managerService) analyze(ctx context.Context, manager *types.Employee, m types.AssessmentMetrics, overall int) managerAnalysis {
	unavailable := managerAnalysis{
		Factors:                types.AssessmentFactors{Positive: []string{}, Negative: []string{}},
		Explanation:            aiAnalysisUnavailable,
		SuggestedInterventions: []types.Intervention{},
	}

	raw, err := s.gen.Generate(ctx, fmt.Sprintf(managerSystemPromptTmpl, overall), managerPrompt(manager, m))
	if err != nil {
		s.log.Warn("manager assessment generation failed", "manager_id", manager.EmployeeID, "error", err)
		observability.Current().IncFallback("manager", "generator_error")
		return unavailable
	}
	out, ok := parseManagerAnalysis(raw)
	if !ok {
		s.log.Warn("manager assessment output unparsable", "manager_id", manager.EmployeeID)
		observability.Current().IncFallback("manager", "unparsable_output")
		return unavailable
	}
	return out
}

func managerPrompt(manager *types.Employee, m types.AssessmentMetrics) string {
	retained := int(math.Round(m.RetentionRate / 100 * float64(m.TeamSize)))
	var b strings.Builder
	fmt.Fprintf(&b, "Manager: %s (%s)\n", manager.Name, manager.DepartmentID)
	fmt.Fprintf(&b, "Team Size: %d\n", m.TeamSize)
	fmt.Fprintf(&b, "Average Performance: %.1f / 5\n", m.AveragePerformance)
	fmt.Fprintf(&b, "Average Engagement: %.1f / 100\n", m.AverageEngagement)
	fmt.Fprintf(&b, "Retention Rate: %.1f%% (%d low risk out of %d)\n", m.RetentionRate, retained, m.TeamSize)
	b.WriteString("Analyze this manager's effectiveness.")
	return b.String()
}

func (s *managerService) AssessmentHistory(ctx context.Context, managerID string) ([]*types.ManagerAssessment, error) {
	out, err := s.assessments.ListByManager(dbctx.New(ctx), managerID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return out, nil
}
