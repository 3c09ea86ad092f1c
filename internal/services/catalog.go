package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/domain/catalog"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type CatalogService interface {
	ListRoles(ctx context.Context) ([]*types.JobRole, error)
	UpsertRole(ctx context.Context, role *types.JobRole) (*types.JobRole, error)
	ListLearningItems(ctx context.Context) ([]*types.LearningItem, error)
	UpsertLearningItem(ctx context.Context, item *types.LearningItem) (*types.LearningItem, error)
}

type catalogService struct {
	log        *logger.Logger
	roles      repos.JobRoleRepo
	items      repos.LearningItemRepo
	embeddings SkillEmbeddingService
}

func NewCatalogService(log *logger.Logger, roles repos.JobRoleRepo, items repos.LearningItemRepo, embeddings SkillEmbeddingService) CatalogService {
	return &catalogService{
		log:        log.With("service", "CatalogService"),
		roles:      roles,
		items:      items,
		embeddings: embeddings,
	}
}

func (s *catalogService) ListRoles(ctx context.Context) ([]*types.JobRole, error) {
	out, err := s.roles.List(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("list job roles: %w", err)
	}
	return out, nil
}

// UpsertRole writes the role, then rebuilds its skill embeddings before returning.
// An embedding failure is returned to the caller; the role row stays written.
func (s *catalogService) UpsertRole(ctx context.Context, role *types.JobRole) (*types.JobRole, error) {
	if role == nil || strings.TrimSpace(role.RoleID) == "" {
		return nil, apierr.Validation("roleId is required")
	}
	if strings.TrimSpace(role.Title) == "" {
		return nil, apierr.Validation("title is required")
	}
	role.NormalizeSkills()
	out, err := s.roles.Upsert(dbctx.New(ctx), role)
	if err != nil {
		return nil, fmt.Errorf("upsert job role: %w", err)
	}
	if s.embeddings != nil {
		if err := s.embeddings.RefreshRoleEmbeddings(ctx, out); err != nil {
			return nil, fmt.Errorf("refresh role embeddings: %w", err)
		}
	}
	return out, nil
}

func (s *catalogService) ListLearningItems(ctx context.Context) ([]*types.LearningItem, error) {
	out, err := s.items.List(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("list learning items: %w", err)
	}
	return out, nil
}

func (s *catalogService) UpsertLearningItem(ctx context.Context, item *types.LearningItem) (*types.LearningItem, error) {
	if item == nil || strings.TrimSpace(item.ItemID) == "" {
		return nil, apierr.Validation("itemId is required")
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, apierr.Validation("title is required")
	}
	if item.Type == "" {
		item.Type = catalog.ItemCourse
	}
	if !catalog.ValidItemType(item.Type) {
		return nil, apierr.Validation("invalid learning item type")
	}
	out, err := s.items.Upsert(dbctx.New(ctx), item)
	if err != nil {
		return nil, fmt.Errorf("upsert learning item: %w", err)
	}
	if s.embeddings != nil {
		if err := s.embeddings.RefreshLearningItemEmbedding(ctx, out); err != nil {
			return nil, fmt.Errorf("refresh learning item embedding: %w", err)
		}
	}
	return out, nil
}
