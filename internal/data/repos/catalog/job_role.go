package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type JobRoleRepo interface {
	Upsert(dbc dbctx.Context, role *types.JobRole) (*types.JobRole, error)
	GetByRoleID(dbc dbctx.Context, roleID string) (*types.JobRole, error)
	List(dbc dbctx.Context) ([]*types.JobRole, error)
}

type jobRoleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRoleRepo(db *gorm.DB, baseLog *logger.Logger) JobRoleRepo {
	return &jobRoleRepo{db: db, log: baseLog.With("repo", "JobRoleRepo")}
}

// Upsert inserts or replaces the role keyed by role_id and returns the stored row.
func (r *jobRoleRepo) Upsert(dbc dbctx.Context, role *types.JobRole) (*types.JobRole, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	role.UpdatedAt = time.Now().UTC()
	err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "role_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title",
				"job_family",
				"level",
				"description",
				"required_skills",
				"updated_at",
			}),
		}).
		Create(role).Error
	if err != nil {
		return nil, err
	}
	return r.GetByRoleID(dbc, role.RoleID)
}

func (r *jobRoleRepo) GetByRoleID(dbc dbctx.Context, roleID string) (*types.JobRole, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out types.JobRole
	err := t.WithContext(dbc.Ctx).Where("role_id = ?", roleID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *jobRoleRepo) List(dbc dbctx.Context) ([]*types.JobRole, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.JobRole
	if err := t.WithContext(dbc.Ctx).Order("role_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
