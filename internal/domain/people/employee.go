package people

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusResigned = "resigned"
	StatusOnNotice = "on_notice"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusResigned, StatusOnNotice:
		return true
	default:
		return false
	}
}

// EmployeeSkill is a self- or manager-assessed proficiency. Level is 1..5.
type EmployeeSkill struct {
	Name            string  `json:"name"`
	Level           int     `json:"level"`
	YearsExperience float64 `json:"yearsExperience,omitempty"`
}

type Employee struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EmployeeID    string     `gorm:"column:employee_id;not null;uniqueIndex" json:"employeeId"`
	Name          string     `gorm:"column:name;not null" json:"name"`
	Email         string     `gorm:"column:email;not null;uniqueIndex" json:"email"`
	ManagerID     string     `gorm:"column:manager_id;index" json:"managerId,omitempty"`
	DepartmentID  string     `gorm:"column:department_id;index" json:"departmentId,omitempty"`
	RoleID        string     `gorm:"column:role_id;index" json:"roleId,omitempty"`
	DateOfJoining *time.Time `gorm:"column:date_of_joining" json:"dateOfJoining,omitempty"`
	Status        string     `gorm:"column:status;not null;default:'active';index" json:"status"`

	Skills datatypes.JSONSlice[EmployeeSkill] `gorm:"column:skills" json:"skills"`

	PerformanceRating     *float64   `gorm:"column:performance_rating" json:"performanceRating,omitempty"`
	PotentialRating       *float64   `gorm:"column:potential_rating" json:"potentialRating,omitempty"`
	EngagementScore       *float64   `gorm:"column:engagement_score" json:"engagementScore,omitempty"`
	PromotionsCount       *int       `gorm:"column:promotions_count" json:"promotionsCount,omitempty"`
	SalaryPercentile      *float64   `gorm:"column:salary_percentile" json:"salaryPercentile,omitempty"`
	LeaveDaysLast12Months *float64   `gorm:"column:leave_days_last_12_months" json:"leaveDaysLast12Months,omitempty"`
	OvertimeHoursPerMonth *float64   `gorm:"column:overtime_hours_per_month" json:"overtimeHoursPerMonth,omitempty"`
	LastPromotionDate     *time.Time `gorm:"column:last_promotion_date" json:"lastPromotionDate,omitempty"`

	CareerLevel      string `gorm:"column:career_level" json:"careerLevel,omitempty"`
	CurrentJobFamily string `gorm:"column:current_job_family" json:"currentJobFamily,omitempty"`
	Location         string `gorm:"column:location" json:"location,omitempty"`

	// Written only by attrition scoring and high-potential evaluation.
	AttritionRiskScore *float64 `gorm:"column:attrition_risk_score" json:"attritionRiskScore,omitempty"`
	AttritionRiskBand  *string  `gorm:"column:attrition_risk_band;index" json:"attritionRiskBand,omitempty"`
	HighPotentialFlag  bool     `gorm:"column:high_potential_flag;not null;default:false" json:"highPotentialFlag"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	return nil
}
