package entity

import (
	"context"
	"fmt"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/features/audit"
)

// MetaPurger removes every stored property of an entity. Implemented by the
// meta repository; declared here to break the entity<->meta import cycle.
type MetaPurger interface {
	DeleteAll(ctx context.Context, entityID string) error
}

type EntityService interface {
	CreateEntity(ctx context.Context, e *Entity) error
	GetEntity(ctx context.Context, id string) (*Entity, error)
	ListEntities(ctx context.Context, entityType common_models.EntityType, page, limit int64) ([]Entity, error)
	DeleteEntity(ctx context.Context, id string) error
}

type EntityServiceImpl struct {
	Repo         EntityRepository
	Meta         MetaPurger
	AuditService audit.AuditService
}

func NewEntityService(repo EntityRepository, meta MetaPurger, auditService audit.AuditService) EntityService {
	return &EntityServiceImpl{
		Repo:         repo,
		Meta:         meta,
		AuditService: auditService,
	}
}

func (s *EntityServiceImpl) CreateEntity(ctx context.Context, e *Entity) error {
	if !e.Type.Valid() {
		return fmt.Errorf("unknown entity type: %s", e.Type)
	}
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}

	err := s.Repo.Create(ctx, e)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionEntity, "entity", e.ID.Hex(), map[string]common_models.Change{
			"entity": {New: e},
		})
	}
	return err
}

func (s *EntityServiceImpl) GetEntity(ctx context.Context, id string) (*Entity, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EntityServiceImpl) ListEntities(ctx context.Context, entityType common_models.EntityType, page, limit int64) ([]Entity, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	return s.Repo.List(ctx, entityType, limit, (page-1)*limit)
}

// DeleteEntity removes the registry row and cascades the property store.
// Both representations of the entity's settings die with it.
func (s *EntityServiceImpl) DeleteEntity(ctx context.Context, id string) error {
	old, _ := s.Repo.Get(ctx, id)

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Meta.DeleteAll(ctx, id); err != nil {
		return fmt.Errorf("entity deleted but meta cleanup failed: %w", err)
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionEntity, "entity", id, map[string]common_models.Change{
		"entity": {Old: old, New: "DELETED"},
	})
	return nil
}
