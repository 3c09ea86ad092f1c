package services

import (
	"math"
	"time"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
)

const (
	BandLow    = "low"
	BandMedium = "medium"
	BandHigh   = "high"

	monthDuration = 30 * 24 * time.Hour
)

// FeatureDefaults are substituted for missing employee attributes before scoring.
type FeatureDefaults struct {
	TenureMonths     float64
	Performance      float64
	PerformanceFloor float64
	Engagement       float64
	Promotions       float64
	SalaryPercentile float64
	LeaveDays        float64
	LeaveDaysCap     float64
	OvertimeHours    float64
}

func DefaultFeatureDefaults() FeatureDefaults {
	return FeatureDefaults{
		TenureMonths:     12,
		Performance:      3,
		PerformanceFloor: 3.2,
		Engagement:       3,
		Promotions:       0,
		SalaryPercentile: 50,
		LeaveDays:        0,
		LeaveDaysCap:     10,
		OvertimeHours:    0,
	}
}

// monthsSince counts 30-day months from t to now, floored at 0. A nil t yields the
// never-promoted sentinel.
func monthsSince(t *time.Time, now time.Time) float64 {
	if t == nil {
		return types.NeverPromotedSentinel
	}
	return math.Max(0, float64(now.Sub(*t))/float64(monthDuration))
}

func tenureMonths(emp *types.Employee, now time.Time, d FeatureDefaults) float64 {
	if emp.DateOfJoining == nil {
		return d.TenureMonths
	}
	return float64(now.Sub(*emp.DateOfJoining)) / float64(monthDuration)
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def float64) float64 {
	if p == nil {
		return def
	}
	return float64(*p)
}

// DeriveAttritionFeatures builds the model input for emp as of now.
func DeriveAttritionFeatures(emp *types.Employee, now time.Time, d FeatureDefaults) types.AttritionFeatures {
	tenure := tenureMonths(emp, now, d)
	promotions := intOr(emp.PromotionsCount, d.Promotions)

	var sincePromotion float64
	switch {
	case emp.LastPromotionDate != nil:
		sincePromotion = monthsSince(emp.LastPromotionDate, now)
	case promotions > 0:
		sincePromotion = tenure / (promotions + 1)
	default:
		sincePromotion = tenure
	}

	return types.AttritionFeatures{
		TenureMonths:             tenure,
		PerformanceScore:         math.Max(d.PerformanceFloor, floatOr(emp.PerformanceRating, d.Performance)),
		EngagementScore:          floatOr(emp.EngagementScore, d.Engagement),
		Promotions:               promotions,
		SalaryPercentile:         floatOr(emp.SalaryPercentile, d.SalaryPercentile),
		LeaveDaysLast12Months:    math.Min(d.LeaveDaysCap, floatOr(emp.LeaveDaysLast12Months, d.LeaveDays)),
		OvertimeHoursPerMonth:    floatOr(emp.OvertimeHoursPerMonth, d.OvertimeHours),
		MonthsSinceLastPromotion: sincePromotion,
	}
}

// BandFor maps a probability to a risk band. Both thresholds are exclusive.
func BandFor(score float64) string {
	switch {
	case score > 0.7:
		return BandHigh
	case score > 0.4:
		return BandMedium
	default:
		return BandLow
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}

// IsHighPotential is the rules-v1 high-potential test.
func IsHighPotential(performance, potential, tenureMonths float64) bool {
	return performance >= 4 && potential >= 4 && tenureMonths >= 12
}
