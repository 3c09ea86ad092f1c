package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const defaultScoreConcurrency = 4

type AttritionResult struct {
	EmployeeID  string  `json:"employeeId"`
	Score       float64 `json:"score"`
	Band        string  `json:"band"`
	Explanation string  `json:"explanation"`
}

type BatchScoreItem struct {
	EmployeeID string           `json:"employeeId"`
	Result     *AttritionResult `json:"result,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type AttritionService interface {
	ScoreEmployee(ctx context.Context, employeeID string) (*AttritionResult, error)
	ScoreMany(ctx context.Context, employeeIDs []string) ([]BatchScoreItem, error)
	RescoreDepartment(ctx context.Context, departmentID string) ([]BatchScoreItem, error)
	ListPredictions(ctx context.Context, employeeID string) ([]*types.Prediction, error)
}

type attritionService struct {
	log         *logger.Logger
	employees   repos.EmployeeRepo
	predictions repos.PredictionRepo
	oracle      ProbabilityOracle
	gen         Generator
	notifier    EventNotifier
	defaults    FeatureDefaults
	concurrency int
	now         clock
}

func NewAttritionService(
	log *logger.Logger,
	employees repos.EmployeeRepo,
	predictions repos.PredictionRepo,
	oracle ProbabilityOracle,
	gen Generator,
	notifier EventNotifier,
) AttritionService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &attritionService{
		log:         log.With("service", "AttritionService"),
		employees:   employees,
		predictions: predictions,
		oracle:      oracle,
		gen:         gen,
		notifier:    notifier,
		defaults:    DefaultFeatureDefaults(),
		concurrency: defaultScoreConcurrency,
		now:         systemClock,
	}
}

func (s *attritionService) ScoreEmployee(ctx context.Context, employeeID string) (res *AttritionResult, err error) {
	ctx, span := observability.StartSpan(ctx, "attrition.score", attribute.String("employee_id", employeeID))
	defer func() { observability.EndSpan(span, err) }()

	dbc := dbctx.New(ctx)
	emp, err := s.employees.GetByEmployeeID(dbc, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, apierr.NotFound("employee not found")
	}

	now := s.now()
	features := DeriveAttritionFeatures(emp, now, s.defaults)
	p, err := s.oracle.PredictAttrition(ctx, features)
	if err != nil {
		return nil, err
	}
	score := clamp01(p)
	band := BandFor(score)

	explanation := s.explain(ctx, emp, features, score, band)

	pred := &types.Prediction{
		EmployeeID:   employeeID,
		Type:         types.PredictionAttrition,
		Score:        score,
		Band:         band,
		FeaturesUsed: datatypes.NewJSONType(featuresUsed(emp, features)),
		Explanation:  explanation,
		ModelVersion: types.ModelAttrition,
	}
	if _, err := s.predictions.Create(dbc, pred); err != nil {
		return nil, fmt.Errorf("store prediction: %w", err)
	}
	if err := s.employees.UpdateRisk(dbc, employeeID, score, band); err != nil {
		return nil, fmt.Errorf("update employee risk: %w", err)
	}
	observability.Current().IncPrediction(types.PredictionAttrition, band)

	s.notifier.Notify(ctx, redis.Event{
		Type:       EventAttritionScored,
		EmployeeID: employeeID,
		Payload:    map[string]any{"score": score, "band": band},
	})
	return &AttritionResult{EmployeeID: employeeID, Score: score, Band: band, Explanation: explanation}, nil
}

// explain asks the generator for a short narrative and falls back to a fixed sentence.
func (s *attritionService) explain(ctx context.Context, emp *types.Employee, f types.AttritionFeatures, score float64, band string) string {
	out, err := s.gen.Generate(ctx, attritionSystemPrompt, attritionPrompt(emp, f, score, band))
	if err != nil || strings.TrimSpace(out) == "" {
		reason := "empty_output"
		if err != nil {
			reason = "generator_error"
			s.log.Warn("attrition explanation failed", "employee_id", emp.EmployeeID, "error", err)
		}
		observability.Current().IncFallback("attrition", reason)
		return FallbackExplanation(score, band)
	}
	return out
}

func FallbackExplanation(score float64, band string) string {
	return fmt.Sprintf(
		"Risk band: %s. Score: %.0f%%. Based on tenure, performance, engagement, promotions, salary, leave frequency, overtime, and time since last promotion.",
		band, score*100,
	)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func numOr(p *float64, fallback string) string {
	if p == nil {
		return fallback
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func attritionPrompt(emp *types.Employee, f types.AttritionFeatures, score float64, band string) string {
	promotions := "0"
	if emp.PromotionsCount != nil {
		promotions = strconv.Itoa(*emp.PromotionsCount)
	}
	since := "never"
	if f.MonthsSinceLastPromotion != types.NeverPromotedSentinel {
		since = fmt.Sprintf("%.0f", f.MonthsSinceLastPromotion)
	}
	var b strings.Builder
	b.WriteString("Employee data:\n")
	fmt.Fprintf(&b, "Name: %s\n", emp.Name)
	fmt.Fprintf(&b, "Department: %s\n", orNA(emp.DepartmentID))
	fmt.Fprintf(&b, "Manager: %s\n", orNA(emp.ManagerID))
	fmt.Fprintf(&b, "Location: %s\n", orNA(emp.Location))
	fmt.Fprintf(&b, "Tenure (months): %.0f\n", f.TenureMonths)
	fmt.Fprintf(&b, "Performance: %s\n", numOr(emp.PerformanceRating, "N/A"))
	fmt.Fprintf(&b, "Engagement: %s\n", numOr(emp.EngagementScore, "N/A"))
	fmt.Fprintf(&b, "Promotions: %s\n", promotions)
	fmt.Fprintf(&b, "Salary percentile: %s\n", numOr(emp.SalaryPercentile, "N/A"))
	fmt.Fprintf(&b, "Leave days (last 12 months): %s\n", numOr(emp.LeaveDaysLast12Months, "0"))
	fmt.Fprintf(&b, "Overtime (hours/month): %s\n", numOr(emp.OvertimeHoursPerMonth, "0"))
	fmt.Fprintf(&b, "Months since last promotion: %s\n", since)
	fmt.Fprintf(&b, "ML attrition risk score (0-1): %.2f (band: %s).\n", score, band)
	b.WriteString("Explain in plain language why this employee might be at this risk level. Use only the facts above.")
	return b.String()
}

// featuresUsed snapshots the raw inputs (nil when absent) plus the derived time features.
func featuresUsed(emp *types.Employee, f types.AttritionFeatures) map[string]any {
	ptr := func(p *float64) any {
		if p == nil {
			return nil
		}
		return *p
	}
	var promotions any
	if emp.PromotionsCount != nil {
		promotions = *emp.PromotionsCount
	}
	return map[string]any{
		"tenureMonths":             f.TenureMonths,
		"performanceRating":        ptr(emp.PerformanceRating),
		"engagementScore":          ptr(emp.EngagementScore),
		"promotionsCount":          promotions,
		"salaryPercentile":         ptr(emp.SalaryPercentile),
		"leaveDaysLast12Months":    ptr(emp.LeaveDaysLast12Months),
		"overtimeHoursPerMonth":    ptr(emp.OvertimeHoursPerMonth),
		"monthsSinceLastPromotion": f.MonthsSinceLastPromotion,
	}
}

// ScoreMany scores each id independently. Failures are reported per item.
func (s *attritionService) ScoreMany(ctx context.Context, employeeIDs []string) ([]BatchScoreItem, error) {
	if len(employeeIDs) == 0 {
		return nil, apierr.Validation("employeeIds array is required")
	}
	out := make([]BatchScoreItem, len(employeeIDs))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range employeeIDs {
		g.Go(func() error {
			out[i].EmployeeID = id
			res, err := s.ScoreEmployee(ctx, id)
			if err != nil {
				s.log.Warn("batch attrition scoring failed", "employee_id", id, "error", err)
				out[i].Error = err.Error()
				return nil
			}
			out[i].Result = res
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

func (s *attritionService) RescoreDepartment(ctx context.Context, departmentID string) ([]BatchScoreItem, error) {
	emps, err := s.employees.List(dbctx.New(ctx), repos.EmployeeFilter{
		DepartmentID: strings.TrimSpace(departmentID),
		Status:       types.StatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if len(emps) == 0 {
		return []BatchScoreItem{}, nil
	}
	ids := make([]string, 0, len(emps))
	for _, e := range emps {
		ids = append(ids, e.EmployeeID)
	}
	return s.ScoreMany(ctx, ids)
}

func (s *attritionService) ListPredictions(ctx context.Context, employeeID string) ([]*types.Prediction, error) {
	dbc := dbctx.New(ctx)
	emp, err := s.employees.GetByEmployeeID(dbc, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, apierr.NotFound("employee not found")
	}
	return s.predictions.ListByEmployee(dbc, employeeID, "")
}
