package insights

import (
	"gorm.io/gorm"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type PredictionRepo interface {
	Create(dbc dbctx.Context, p *types.Prediction) (*types.Prediction, error)
	ListByEmployee(dbc dbctx.Context, employeeID string, predictionType string) ([]*types.Prediction, error)
}

type predictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPredictionRepo(db *gorm.DB, baseLog *logger.Logger) PredictionRepo {
	return &predictionRepo{db: db, log: baseLog.With("repo", "PredictionRepo")}
}

func (r *predictionRepo) Create(dbc dbctx.Context, p *types.Prediction) (*types.Prediction, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListByEmployee returns newest first. An empty predictionType matches every type.
func (r *predictionRepo) ListByEmployee(dbc dbctx.Context, employeeID string, predictionType string) ([]*types.Prediction, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Where("employee_id = ?", employeeID)
	if predictionType != "" {
		q = q.Where("type = ?", predictionType)
	}
	var out []*types.Prediction
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
