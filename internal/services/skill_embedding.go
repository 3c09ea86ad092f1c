package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
	"github.com/yungbote/talent-analytics-backend/internal/platform/vecmath"
)

const (
	DefaultSimilarTopK          = 10
	DefaultMinSimilarity        = 0.4
	DefaultMaxScoreThreshold    = 0.5
	defaultEmbeddingConcurrency = 8
)

type SimilarityQuery struct {
	Query             string
	TopK              int
	MinSimilarity     float64
	MaxScoreThreshold float64
}

// NewSimilarityQuery fills in the default thresholds. topK <= 0 means the default.
func NewSimilarityQuery(query string, topK int) SimilarityQuery {
	return SimilarityQuery{
		Query:             query,
		TopK:              topK,
		MinSimilarity:     DefaultMinSimilarity,
		MaxScoreThreshold: DefaultMaxScoreThreshold,
	}
}

type SimilarSkill struct {
	ID    string              `json:"id"`
	Key   string              `json:"key"`
	Type  string              `json:"type"`
	Label string              `json:"label"`
	Meta  types.EmbeddingMeta `json:"meta"`
	Score float64             `json:"score"`
}

type RebuildResult struct {
	TotalEmbeddings int64 `json:"totalEmbeddings"`
}

type SkillEmbeddingService interface {
	RefreshRoleEmbeddings(ctx context.Context, role *types.JobRole) error
	RefreshLearningItemEmbedding(ctx context.Context, item *types.LearningItem) error
	RebuildAllRoleEmbeddings(ctx context.Context) (RebuildResult, error)
	RebuildAllLearningEmbeddings(ctx context.Context) (RebuildResult, error)
	FindSimilar(ctx context.Context, q SimilarityQuery) ([]SimilarSkill, error)
}

type skillEmbeddingService struct {
	log         *logger.Logger
	embeddings  repos.SkillEmbeddingRepo
	roles       repos.JobRoleRepo
	items       repos.LearningItemRepo
	gen         Generator
	embedder    Embedder
	concurrency int
}

func NewSkillEmbeddingService(
	log *logger.Logger,
	embeddings repos.SkillEmbeddingRepo,
	roles repos.JobRoleRepo,
	items repos.LearningItemRepo,
	gen Generator,
	embedder Embedder,
	concurrency int,
) SkillEmbeddingService {
	if concurrency <= 0 {
		concurrency = defaultEmbeddingConcurrency
	}
	return &skillEmbeddingService{
		log:         log.With("service", "SkillEmbeddingService"),
		embeddings:  embeddings,
		roles:       roles,
		items:       items,
		gen:         gen,
		embedder:    embedder,
		concurrency: concurrency,
	}
}

func roleSkillKey(roleID, skill string) string {
	return fmt.Sprintf("role:%s:skill:%s", roleID, strings.ToLower(skill))
}

func learningItemKey(itemID string) string {
	return "learning:" + itemID
}

// RefreshRoleEmbeddings replaces the role's skill vectors. Per-skill embed failures are logged
// and skipped; only the initial delete can fail the call.
func (s *skillEmbeddingService) RefreshRoleEmbeddings(ctx context.Context, role *types.JobRole) error {
	if role == nil {
		return apierr.Validation("job role is required")
	}
	dbc := dbctx.New(ctx)
	if err := s.embeddings.DeleteRoleSkills(dbc, role.RoleID); err != nil {
		return fmt.Errorf("delete role embeddings: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, req := range role.RequiredSkills {
		g.Go(func() error {
			text := fmt.Sprintf("Skill: %s required for role %s in job family %s", req.Name, role.Title, role.JobFamily)
			vec, err := s.embedder.Embed(ctx, text)
			if err != nil {
				s.log.Warn("role skill embedding failed", "role_id", role.RoleID, "skill", req.Name, "error", err)
				return nil
			}
			row := &types.SkillEmbedding{
				Key:    roleSkillKey(role.RoleID, req.Name),
				Type:   types.EmbeddingRoleSkill,
				Label:  fmt.Sprintf("%s (%s)", req.Name, role.Title),
				Text:   text,
				Vector: datatypes.JSONSlice[float32](vec),
				Meta:   datatypes.NewJSONType(types.EmbeddingMeta{RoleID: role.RoleID, SkillName: req.Name}),
			}
			if err := s.embeddings.Upsert(dbc, row); err != nil {
				s.log.Warn("role skill embedding store failed", "role_id", role.RoleID, "skill", req.Name, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// RefreshLearningItemEmbedding replaces the item's vector. Failures are logged, not returned.
func (s *skillEmbeddingService) RefreshLearningItemEmbedding(ctx context.Context, item *types.LearningItem) error {
	if item == nil {
		return apierr.Validation("learning item is required")
	}
	dbc := dbctx.New(ctx)
	if err := s.embeddings.DeleteLearningItem(dbc, item.ItemID); err != nil {
		s.log.Warn("learning item embedding delete failed", "item_id", item.ItemID, "error", err)
		return nil
	}
	text := fmt.Sprintf("Learning item: %s. Skills: %s", item.Title, strings.Join(item.SkillsTargeted, ", "))
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.log.Warn("learning item embedding failed", "item_id", item.ItemID, "error", err)
		return nil
	}
	row := &types.SkillEmbedding{
		Key:    learningItemKey(item.ItemID),
		Type:   types.EmbeddingLearningItem,
		Label:  item.Title,
		Text:   text,
		Vector: datatypes.JSONSlice[float32](vec),
		Meta:   datatypes.NewJSONType(types.EmbeddingMeta{ItemID: item.ItemID}),
	}
	if err := s.embeddings.Upsert(dbc, row); err != nil {
		s.log.Warn("learning item embedding store failed", "item_id", item.ItemID, "error", err)
	}
	return nil
}

func (s *skillEmbeddingService) RebuildAllRoleEmbeddings(ctx context.Context) (RebuildResult, error) {
	ctx, span := observability.StartSpan(ctx, "skill_embeddings.rebuild_roles")
	roles, err := s.roles.List(dbctx.New(ctx))
	if err != nil {
		observability.EndSpan(span, err)
		return RebuildResult{}, fmt.Errorf("list job roles: %w", err)
	}
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, role := range roles {
		g.Go(func() error {
			if err := s.RefreshRoleEmbeddings(ctx, role); err != nil {
				s.log.Warn("role embedding refresh failed", "role_id", role.RoleID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	res, err := s.count(ctx)
	observability.EndSpan(span, err)
	return res, err
}

func (s *skillEmbeddingService) RebuildAllLearningEmbeddings(ctx context.Context) (RebuildResult, error) {
	ctx, span := observability.StartSpan(ctx, "skill_embeddings.rebuild_learning")
	items, err := s.items.List(dbctx.New(ctx))
	if err != nil {
		observability.EndSpan(span, err)
		return RebuildResult{}, fmt.Errorf("list learning items: %w", err)
	}
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, item := range items {
		g.Go(func() error {
			_ = s.RefreshLearningItemEmbedding(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
	res, err := s.count(ctx)
	observability.EndSpan(span, err)
	return res, err
}

func (s *skillEmbeddingService) count(ctx context.Context) (RebuildResult, error) {
	n, err := s.embeddings.Count(dbctx.New(ctx))
	if err != nil {
		return RebuildResult{}, fmt.Errorf("count embeddings: %w", err)
	}
	observability.Current().SetEmbeddingRows(n)
	return RebuildResult{TotalEmbeddings: n}, nil
}

// isSkillQuery asks the generator whether q names a skill. Generator errors count as yes.
func (s *skillEmbeddingService) isSkillQuery(ctx context.Context, q string) bool {
	out, err := s.gen.Generate(ctx, skillQuerySystemPrompt, fmt.Sprintf("Is %q a skill, technology, or learning-related topic?", q))
	if err != nil {
		s.log.Warn("skill query classification failed, allowing query", "error", err)
		observability.Current().IncFallback("find_similar", "classifier_error")
		return true
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(out)), "YES")
}

func (s *skillEmbeddingService) FindSimilar(ctx context.Context, q SimilarityQuery) ([]SimilarSkill, error) {
	query := strings.TrimSpace(q.Query)
	if query == "" {
		return nil, apierr.Validation("query is required")
	}
	topK := q.TopK
	if topK <= 0 {
		topK = DefaultSimilarTopK
	}

	ctx, span := observability.StartSpan(ctx, "skill_embeddings.find_similar", attribute.Int("top_k", topK))
	var spanErr error
	defer func() { observability.EndSpan(span, spanErr) }()

	if !s.isSkillQuery(ctx, query) {
		return []SimilarSkill{}, nil
	}

	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		spanErr = err
		return nil, err
	}
	rows, err := s.embeddings.ListAll(dbctx.New(ctx))
	if err != nil {
		spanErr = err
		return nil, fmt.Errorf("load embeddings: %w", err)
	}
	return rankSimilar(qvec, rows, topK, q.MinSimilarity, q.MaxScoreThreshold), nil
}

// rankSimilar scores rows against qvec, keeps those at or above minSim, and returns the best
// topK only when the best score reaches maxThreshold.
func rankSimilar(qvec []float32, rows []*types.SkillEmbedding, topK int, minSim, maxThreshold float64) []SimilarSkill {
	scored := make([]SimilarSkill, 0, len(rows))
	for _, r := range rows {
		score := vecmath.Cosine(qvec, r.Vector)
		if score < minSim {
			continue
		}
		scored = append(scored, SimilarSkill{
			ID:    r.ID.String(),
			Key:   r.Key,
			Type:  r.Type,
			Label: r.Label,
			Meta:  r.Meta.Data(),
			Score: score,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) == 0 || scored[0].Score < maxThreshold {
		return []SimilarSkill{}
	}
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
