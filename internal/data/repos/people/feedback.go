package people

import (
	"gorm.io/gorm"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type FeedbackRepo interface {
	Create(dbc dbctx.Context, fb *types.Feedback) (*types.Feedback, error)
	ListByEmployee(dbc dbctx.Context, employeeID string) ([]*types.Feedback, error)
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return &feedbackRepo{db: db, log: baseLog.With("repo", "FeedbackRepo")}
}

func (r *feedbackRepo) Create(dbc dbctx.Context, fb *types.Feedback) (*types.Feedback, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(fb).Error; err != nil {
		return nil, err
	}
	return fb, nil
}

// ListByEmployee returns feedback oldest first.
func (r *feedbackRepo) ListByEmployee(dbc dbctx.Context, employeeID string) ([]*types.Feedback, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Feedback
	if err := t.WithContext(dbc.Ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
