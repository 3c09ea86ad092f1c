package insights

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type WorkforceSnapshotRepo interface {
	Upsert(dbc dbctx.Context, snap *types.WorkforceSnapshot) error
	ListRecent(dbc dbctx.Context, departmentID string, limit int) ([]*types.WorkforceSnapshot, error)
}

type workforceSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkforceSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) WorkforceSnapshotRepo {
	return &workforceSnapshotRepo{db: db, log: baseLog.With("repo", "WorkforceSnapshotRepo")}
}

func (r *workforceSnapshotRepo) Upsert(dbc dbctx.Context, snap *types.WorkforceSnapshot) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	snap.UpdatedAt = time.Now().UTC()
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "department_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"headcount", "exits", "joins", "updated_at"}),
		}).
		Create(snap).Error
}

// ListRecent returns at most limit of the newest snapshots, ordered oldest first.
func (r *workforceSnapshotRepo) ListRecent(dbc dbctx.Context, departmentID string, limit int) ([]*types.WorkforceSnapshot, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Model(&types.WorkforceSnapshot{})
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*types.WorkforceSnapshot
	if err := q.Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
