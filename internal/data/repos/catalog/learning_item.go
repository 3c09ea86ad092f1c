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

type LearningItemRepo interface {
	Upsert(dbc dbctx.Context, item *types.LearningItem) (*types.LearningItem, error)
	GetByItemID(dbc dbctx.Context, itemID string) (*types.LearningItem, error)
	List(dbc dbctx.Context) ([]*types.LearningItem, error)
}

type learningItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningItemRepo(db *gorm.DB, baseLog *logger.Logger) LearningItemRepo {
	return &learningItemRepo{db: db, log: baseLog.With("repo", "LearningItemRepo")}
}

func (r *learningItemRepo) Upsert(dbc dbctx.Context, item *types.LearningItem) (*types.LearningItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	item.UpdatedAt = time.Now().UTC()
	err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title",
				"type",
				"skills_targeted",
				"level",
				"duration_hours",
				"provider",
				"url",
				"updated_at",
			}),
		}).
		Create(item).Error
	if err != nil {
		return nil, err
	}
	return r.GetByItemID(dbc, item.ItemID)
}

func (r *learningItemRepo) GetByItemID(dbc dbctx.Context, itemID string) (*types.LearningItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out types.LearningItem
	err := t.WithContext(dbc.Ctx).Where("item_id = ?", itemID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *learningItemRepo) List(dbc dbctx.Context) ([]*types.LearningItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LearningItem
	if err := t.WithContext(dbc.Ctx).Order("item_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
