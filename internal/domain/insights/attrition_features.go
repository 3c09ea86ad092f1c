package insights

// NeverPromotedSentinel is the months-since-promotion value used when no promotion date exists.
const NeverPromotedSentinel = 999

// AttritionFeatures is the numeric vector sent to the probability model.
type AttritionFeatures struct {
	TenureMonths             float64 `json:"tenure_months"`
	PerformanceScore         float64 `json:"performance_score"`
	EngagementScore          float64 `json:"engagement_score"`
	Promotions               float64 `json:"promotions"`
	SalaryPercentile         float64 `json:"salary_percentile"`
	LeaveDaysLast12Months    float64 `json:"leave_days_last_12_months"`
	OvertimeHoursPerMonth    float64 `json:"overtime_hours_per_month"`
	MonthsSinceLastPromotion float64 `json:"months_since_last_promotion"`
}
