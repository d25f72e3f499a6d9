package meta

import (
	"context"
	"fmt"

	common_models "go-lms-bridge/internal/common/models"

	"go.uber.org/zap"
)

// ChangeHandler receives every property write, synchronously, in
// registration order. The store fires the same notification no matter who
// wrote; handlers that mirror data are expected to guard against their own
// echoes. A handler error becomes a warning on the write, never a failure.
type ChangeHandler interface {
	HandleMetaChange(ctx context.Context, change common_models.MetaChange) error
}

// EntityFinder resolves an entity's type tag. Implemented by the entity
// repository; declared here to break the meta<->entity import cycle.
type EntityFinder interface {
	FindType(ctx context.Context, id string) (common_models.EntityType, error)
}

type MetaService interface {
	Get(ctx context.Context, entityID, key string) (interface{}, error)
	GetAll(ctx context.Context, entityID string) (map[string]interface{}, error)
	Set(ctx context.Context, entityID, key string, value interface{}) (*ChangeResult, error)
	Delete(ctx context.Context, entityID, key string) error
	RegisterHandler(h ChangeHandler)
}

type MetaServiceImpl struct {
	Repo     MetaRepository
	Entities EntityFinder
	Logger   *zap.Logger

	handlers []ChangeHandler
}

func NewMetaService(repo MetaRepository, entities EntityFinder, logger *zap.Logger) MetaService {
	return &MetaServiceImpl{
		Repo:     repo,
		Entities: entities,
		Logger:   logger,
	}
}

// RegisterHandler is called during wiring, before the server accepts
// traffic; the handler slice is read-only afterwards.
func (s *MetaServiceImpl) RegisterHandler(h ChangeHandler) {
	s.handlers = append(s.handlers, h)
}

func (s *MetaServiceImpl) Get(ctx context.Context, entityID, key string) (interface{}, error) {
	return s.Repo.Get(ctx, entityID, key)
}

func (s *MetaServiceImpl) GetAll(ctx context.Context, entityID string) (map[string]interface{}, error) {
	return s.Repo.GetAll(ctx, entityID)
}

func (s *MetaServiceImpl) Set(ctx context.Context, entityID, key string, value interface{}) (*ChangeResult, error) {
	entityType, err := s.Entities.FindType(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("unknown entity %s: %w", entityID, err)
	}

	if err := s.Repo.Set(ctx, entityID, key, value); err != nil {
		return nil, err
	}

	change := common_models.MetaChange{
		EntityID:   entityID,
		EntityType: entityType,
		Key:        key,
		Value:      value,
	}

	result := &ChangeResult{}
	for _, h := range s.handlers {
		result.Notified++
		if err := h.HandleMetaChange(ctx, change); err != nil {
			s.Logger.Warn("meta change handler failed",
				zap.String("entity_id", entityID),
				zap.String("key", key),
				zap.Error(err))
			result.Warnings = append(result.Warnings, err.Error())
		}
	}

	return result, nil
}

func (s *MetaServiceImpl) Delete(ctx context.Context, entityID, key string) error {
	return s.Repo.Delete(ctx, entityID, key)
}
