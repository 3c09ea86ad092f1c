package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const (
	forecastHistoryLimit = 24
	forecastHorizon      = 6
	unknownDepartment    = "Unknown"
)

type ForecastPeriod struct {
	Period             int     `json:"period"`
	ExpectedExits      float64 `json:"expectedExits"`
	ProjectedHeadcount float64 `json:"projectedHeadcount"`
}

type ForecastMeta struct {
	ActiveCount             int     `json:"activeCount"`
	AnnualizedExpectedExits float64 `json:"annualizedExpectedExits"`
}

type Forecast struct {
	History  []*types.WorkforceSnapshot `json:"history"`
	Forecast []ForecastPeriod           `json:"forecast"`
	Meta     ForecastMeta               `json:"meta"`
}

type DepartmentHeadcount struct {
	DepartmentID string `json:"departmentId"`
	Headcount    int64  `json:"headcount"`
}

type RiskBandStat struct {
	Band  *string `json:"band"`
	Count int64   `json:"count"`
}

type DepartmentRisk struct {
	Department string `json:"department"`
	Low        int64  `json:"low"`
	Medium     int64  `json:"medium"`
	High       int64  `json:"high"`
}

type AnalyticsService interface {
	Forecast(ctx context.Context, departmentID string) (*Forecast, error)
	HeadcountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error)
	AttritionRiskStats(ctx context.Context) ([]RiskBandStat, error)
	AttritionRiskByDepartment(ctx context.Context) ([]DepartmentRisk, error)
}

type analyticsService struct {
	log       *logger.Logger
	employees repos.EmployeeRepo
	snapshots repos.WorkforceSnapshotRepo
}

func NewAnalyticsService(log *logger.Logger, employees repos.EmployeeRepo, snapshots repos.WorkforceSnapshotRepo) AnalyticsService {
	return &analyticsService{
		log:       log.With("service", "AnalyticsService"),
		employees: employees,
		snapshots: snapshots,
	}
}

func (s *analyticsService) Forecast(ctx context.Context, departmentID string) (out *Forecast, err error) {
	ctx, span := observability.StartSpan(ctx, "analytics.forecast", attribute.String("department_id", departmentID))
	defer func() { observability.EndSpan(span, err) }()

	dbc := dbctx.New(ctx)
	history, err := s.snapshots.ListRecent(dbc, departmentID, forecastHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	active, err := s.employees.ListActiveRisk(dbc, departmentID)
	if err != nil {
		return nil, fmt.Errorf("load active employees: %w", err)
	}
	f := BuildForecast(history, active)
	return &f, nil
}

// ExitProbability is the yearly exit probability used by the forecast.
func ExitProbability(e *types.Employee) float64 {
	if e.HighPotentialFlag {
		return 0
	}
	if e.AttritionRiskScore != nil {
		return *e.AttritionRiskScore
	}
	if e.AttritionRiskBand == nil || *e.AttritionRiskBand == "" {
		return 0.1
	}
	switch *e.AttritionRiskBand {
	case BandHigh:
		return 0.7
	case BandMedium:
		return 0.3
	case BandLow:
		return 0.05
	default:
		return 0.1
	}
}

// BuildForecast projects headcount over six monthly periods from the active employees' risk.
func BuildForecast(history []*types.WorkforceSnapshot, active []*types.Employee) Forecast {
	var annual float64
	for _, e := range active {
		annual += ExitProbability(e)
	}
	monthly := annual / 12

	if history == nil {
		history = []*types.WorkforceSnapshot{}
	}
	periods := make([]ForecastPeriod, 0, forecastHorizon)
	projected := float64(len(active))
	for i := 1; i <= forecastHorizon; i++ {
		projected -= monthly
		periods = append(periods, ForecastPeriod{
			Period:             i,
			ExpectedExits:      roundTo(monthly, 2),
			ProjectedHeadcount: math.Max(0, roundTo(projected, 1)),
		})
	}
	return Forecast{
		History:  history,
		Forecast: periods,
		Meta: ForecastMeta{
			ActiveCount:             len(active),
			AnnualizedExpectedExits: roundTo(annual, 1),
		},
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func (s *analyticsService) HeadcountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error) {
	rows, err := s.employees.CountActiveByDepartment(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("headcount by department: %w", err)
	}
	out := make([]DepartmentHeadcount, 0, len(rows))
	for _, r := range rows {
		out = append(out, DepartmentHeadcount{DepartmentID: r.DepartmentID, Headcount: r.Count})
	}
	return out, nil
}

func (s *analyticsService) AttritionRiskStats(ctx context.Context) ([]RiskBandStat, error) {
	rows, err := s.employees.CountByBand(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("risk band stats: %w", err)
	}
	out := make([]RiskBandStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, RiskBandStat{Band: r.Band, Count: r.Count})
	}
	return out, nil
}

func (s *analyticsService) AttritionRiskByDepartment(ctx context.Context) ([]DepartmentRisk, error) {
	rows, err := s.employees.CountActiveBandByDepartment(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("risk by department: %w", err)
	}
	byDept := map[string]*DepartmentRisk{}
	for _, r := range rows {
		name := r.DepartmentID
		if name == "" {
			name = unknownDepartment
		}
		entry, ok := byDept[name]
		if !ok {
			entry = &DepartmentRisk{Department: name}
			byDept[name] = entry
		}
		switch r.Band {
		case BandLow:
			entry.Low += r.Count
		case BandMedium:
			entry.Medium += r.Count
		case BandHigh:
			entry.High += r.Count
		}
	}
	out := make([]DepartmentRisk, 0, len(byDept))
	for _, e := range byDept {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out, nil
}
