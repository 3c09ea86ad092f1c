package insights

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type SkillEmbeddingRepo interface {
	Upsert(dbc dbctx.Context, row *types.SkillEmbedding) error
	DeleteRoleSkills(dbc dbctx.Context, roleID string) error
	DeleteLearningItem(dbc dbctx.Context, itemID string) error
	ListAll(dbc dbctx.Context) ([]*types.SkillEmbedding, error)
	ListByRole(dbc dbctx.Context, roleID string) ([]*types.SkillEmbedding, error)
	Count(dbc dbctx.Context) (int64, error)
}

type skillEmbeddingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillEmbeddingRepo(db *gorm.DB, baseLog *logger.Logger) SkillEmbeddingRepo {
	return &skillEmbeddingRepo{db: db, log: baseLog.With("repo", "SkillEmbeddingRepo")}
}

// Upsert writes the row keyed by key. Concurrent writers for the same key converge on one row.
func (r *skillEmbeddingRepo) Upsert(dbc dbctx.Context, row *types.SkillEmbedding) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row.UpdatedAt = time.Now().UTC()
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"type",
				"label",
				"text",
				"vector",
				"meta",
				"meta_role_id",
				"meta_item_id",
				"updated_at",
			}),
		}).
		Create(row).Error
}

func (r *skillEmbeddingRepo) DeleteRoleSkills(dbc dbctx.Context, roleID string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("type = ? AND meta_role_id = ?", types.EmbeddingRoleSkill, roleID).
		Delete(&types.SkillEmbedding{}).Error
}

func (r *skillEmbeddingRepo) DeleteLearningItem(dbc dbctx.Context, itemID string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("type = ? AND meta_item_id = ?", types.EmbeddingLearningItem, itemID).
		Delete(&types.SkillEmbedding{}).Error
}

func (r *skillEmbeddingRepo) ListAll(dbc dbctx.Context) ([]*types.SkillEmbedding, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.SkillEmbedding
	if err := t.WithContext(dbc.Ctx).Order("key ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *skillEmbeddingRepo) ListByRole(dbc dbctx.Context, roleID string) ([]*types.SkillEmbedding, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.SkillEmbedding
	if err := t.WithContext(dbc.Ctx).
		Where("type = ? AND meta_role_id = ?", types.EmbeddingRoleSkill, roleID).
		Order("key ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *skillEmbeddingRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.SkillEmbedding{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
