package people

import (
	"errors"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type EmployeeFilter struct {
	DepartmentID string
	ManagerID    string
	Status       string
	Limit        int
}

type DepartmentCount struct {
	DepartmentID string `json:"departmentId"`
	Count        int64  `json:"count"`
}

type BandCount struct {
	Band  *string `json:"band"`
	Count int64   `json:"count"`
}

type DepartmentBandCount struct {
	DepartmentID string
	Band         string
	Count        int64
}

type EmployeeRepo interface {
	Create(dbc dbctx.Context, emp *types.Employee) (*types.Employee, error)
	Save(dbc dbctx.Context, emp *types.Employee) error
	GetByEmployeeID(dbc dbctx.Context, employeeID string) (*types.Employee, error)
	GetByEmployeeIDs(dbc dbctx.Context, employeeIDs []string) ([]*types.Employee, error)
	List(dbc dbctx.Context, f EmployeeFilter) ([]*types.Employee, error)
	ListByManager(dbc dbctx.Context, managerID string) ([]*types.Employee, error)
	ListActiveRisk(dbc dbctx.Context, departmentID string) ([]*types.Employee, error)
	UpdateRisk(dbc dbctx.Context, employeeID string, score float64, band string) error
	UpdateHighPotential(dbc dbctx.Context, employeeID string, flag bool) error
	CountActiveByDepartment(dbc dbctx.Context) ([]DepartmentCount, error)
	CountByBand(dbc dbctx.Context) ([]BandCount, error)
	CountActiveBandByDepartment(dbc dbctx.Context) ([]DepartmentBandCount, error)
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	repoLog := baseLog.With("repo", "EmployeeRepo")
	return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) Create(dbc dbctx.Context, emp *types.Employee) (*types.Employee, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(emp).Error; err != nil {
		return nil, err
	}
	return emp, nil
}

func (r *employeeRepo) Save(dbc dbctx.Context, emp *types.Employee) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Save(emp).Error
}

func (r *employeeRepo) GetByEmployeeID(dbc dbctx.Context, employeeID string) (*types.Employee, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out types.Employee
	err := t.WithContext(dbc.Ctx).
		Where("employee_id = ?", employeeID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *employeeRepo) GetByEmployeeIDs(dbc dbctx.Context, employeeIDs []string) ([]*types.Employee, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Employee
	if len(employeeIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("employee_id IN ?", employeeIDs).
		Order("employee_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) List(dbc dbctx.Context, f EmployeeFilter) ([]*types.Employee, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Model(&types.Employee{})
	if f.DepartmentID != "" {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.ManagerID != "" {
		q = q.Where("manager_id = ?", f.ManagerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []*types.Employee
	if err := q.Order("employee_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) ListByManager(dbc dbctx.Context, managerID string) ([]*types.Employee, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Employee
	if err := t.WithContext(dbc.Ctx).
		Where("manager_id = ?", managerID).
		Order("employee_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveRisk loads active employees with only the fields the forecast needs.
func (r *employeeRepo) ListActiveRisk(dbc dbctx.Context, departmentID string) ([]*types.Employee, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).
		Model(&types.Employee{}).
		Select("id", "employee_id", "department_id", "attrition_risk_score", "attrition_risk_band", "high_potential_flag").
		Where("status = ?", types.StatusActive)
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	var out []*types.Employee
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) UpdateRisk(dbc dbctx.Context, employeeID string, score float64, band string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Employee{}).
		Where("employee_id = ?", employeeID).
		Updates(map[string]interface{}{
			"attrition_risk_score": score,
			"attrition_risk_band":  band,
			"updated_at":           time.Now().UTC(),
		}).Error
}

func (r *employeeRepo) UpdateHighPotential(dbc dbctx.Context, employeeID string, flag bool) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Employee{}).
		Where("employee_id = ?", employeeID).
		Updates(map[string]interface{}{
			"high_potential_flag": flag,
			"updated_at":          time.Now().UTC(),
		}).Error
}

func (r *employeeRepo) CountActiveByDepartment(dbc dbctx.Context) ([]DepartmentCount, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []DepartmentCount
	err := t.WithContext(dbc.Ctx).
		Model(&types.Employee{}).
		Select("department_id, COUNT(*) AS count").
		Where("status = ?", types.StatusActive).
		Group("department_id").
		Order("department_id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) CountByBand(dbc dbctx.Context) ([]BandCount, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []BandCount
	err := t.WithContext(dbc.Ctx).
		Model(&types.Employee{}).
		Select("attrition_risk_band AS band, COUNT(*) AS count").
		Group("attrition_risk_band").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) CountActiveBandByDepartment(dbc dbctx.Context) ([]DepartmentBandCount, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []DepartmentBandCount
	err := t.WithContext(dbc.Ctx).
		Model(&types.Employee{}).
		Select("department_id, attrition_risk_band AS band, COUNT(*) AS count").
		Where("status = ? AND attrition_risk_band IN ?", types.StatusActive, []string{"low", "medium", "high"}).
		Group("department_id, attrition_risk_band").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
