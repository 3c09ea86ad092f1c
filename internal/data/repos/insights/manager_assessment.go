package insights

import (
	"errors"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type ManagerAssessmentRepo interface {
	Create(dbc dbctx.Context, a *types.ManagerAssessment) (*types.ManagerAssessment, error)
	LatestSince(dbc dbctx.Context, managerID string, since time.Time) (*types.ManagerAssessment, error)
	ListByManager(dbc dbctx.Context, managerID string) ([]*types.ManagerAssessment, error)
}

type managerAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewManagerAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) ManagerAssessmentRepo {
	return &managerAssessmentRepo{db: db, log: baseLog.With("repo", "ManagerAssessmentRepo")}
}

func (r *managerAssessmentRepo) Create(dbc dbctx.Context, a *types.ManagerAssessment) (*types.ManagerAssessment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// LatestSince returns the newest assessment created after since, or nil.
func (r *managerAssessmentRepo) LatestSince(dbc dbctx.Context, managerID string, since time.Time) (*types.ManagerAssessment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out types.ManagerAssessment
	err := t.WithContext(dbc.Ctx).
		Where("manager_id = ? AND created_at > ?", managerID, since.UTC()).
		Order("created_at DESC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *managerAssessmentRepo) ListByManager(dbc dbctx.Context, managerID string) ([]*types.ManagerAssessment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ManagerAssessment
	if err := t.WithContext(dbc.Ctx).
		Where("manager_id = ?", managerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
