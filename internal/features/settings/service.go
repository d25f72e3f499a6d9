package settings

import (
	"context"
	"fmt"
	"sort"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/features/audit"
	"go-lms-bridge/internal/features/mapper"
	"go-lms-bridge/internal/features/meta"

	"go.uber.org/zap"
)

// EntityFinder resolves an entity's type tag; adapted from the entity
// repository at wiring time.
type EntityFinder interface {
	FindType(ctx context.Context, id string) (common_models.EntityType, error)
}

// UpdateResult reports a settings patch field by field. Unknown fields
// and mirror trouble are warnings; the patch itself never hard-fails
// half way.
type UpdateResult struct {
	Updated  []string `json:"updated"`
	Skipped  []string `json:"skipped,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// SettingsService assembles the canonical settings document and applies
// partial updates to it. Reads are pure assembly over stored properties
// plus field defaults; writes go through the meta store so the sync
// engine mirrors them.
type SettingsService interface {
	GetSettings(ctx context.Context, entityID string) (map[string]interface{}, error)
	UpdateSettings(ctx context.Context, entityID string, payload map[string]interface{}) (*UpdateResult, error)
}

type SettingsServiceImpl struct {
	Meta         meta.MetaService
	Mapper       mapper.MapperService
	Entities     EntityFinder
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewSettingsService(metaService meta.MetaService, mapperService mapper.MapperService, entities EntityFinder, auditService audit.AuditService, logger *zap.Logger) SettingsService {
	return &SettingsServiceImpl{
		Meta:         metaService,
		Mapper:       mapperService,
		Entities:     entities,
		AuditService: auditService,
		Logger:       logger,
	}
}

// GetSettings returns the full canonical document for one entity. Every
// mapped field is present: stored values where they exist, declared
// defaults everywhere else, aggregate fields decoded out of their
// legacy bag.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context, entityID string) (map[string]interface{}, error) {
	entityType, err := s.Entities.FindType(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("unknown entity %s: %w", entityID, err)
	}

	props, err := s.Meta.GetAll(ctx, entityID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{})
	for _, entry := range s.Mapper.Entries(entityType) {
		setPath(out, entry.Path, s.assembleField(entry, props))
	}
	return out, nil
}

func (s *SettingsServiceImpl) assembleField(entry *mapper.MappingEntry, props map[string]interface{}) interface{} {
	if entry.Mode == mapper.StorageDedicated {
		if value, ok := props[entry.CanonicalKey]; ok {
			return value
		}
		return entry.Default
	}

	// Aggregate fields live only inside their legacy bag.
	if len(entry.Targets) == 0 {
		return entry.Default
	}
	target := entry.Targets[0]
	bag, ok := common_models.AsBag(props[target.Bag])
	if !ok {
		return entry.Default
	}
	raw, present := bag[target.Key]
	if !present {
		return entry.Default
	}
	return entry.ReverseValue(target, raw)
}

// UpdateSettings applies a partial nested payload. Each known field is
// written through the meta store, which fires the sync engine; unknown
// fields are skipped with a warning.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, entityID string, payload map[string]interface{}) (*UpdateResult, error) {
	entityType, err := s.Entities.FindType(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("unknown entity %s: %w", entityID, err)
	}

	before, err := s.Meta.GetAll(ctx, entityID)
	if err != nil {
		return nil, err
	}

	flat := Flatten(payload)
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	result := &UpdateResult{}
	changes := make(map[string]common_models.Change)

	for _, path := range paths {
		value := flat[path]

		entry, ok := s.Mapper.Resolve(entityType, path)
		if !ok {
			result.Skipped = append(result.Skipped, path)
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown field %q for %s", path, entityType))
			continue
		}

		var old interface{}
		var writeErr error
		var mirror *meta.ChangeResult

		if entry.Mode == mapper.StorageDedicated {
			old = before[entry.CanonicalKey]
			mirror, writeErr = s.Meta.Set(ctx, entityID, entry.CanonicalKey, value)
		} else {
			old, mirror, writeErr = s.writeAggregate(ctx, entityID, entry, value, before)
		}

		if writeErr != nil {
			result.Skipped = append(result.Skipped, path)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", path, writeErr))
			continue
		}

		result.Updated = append(result.Updated, path)
		result.Warnings = append(result.Warnings, mirror.Warnings...)
		changes[path] = common_models.Change{Old: old, New: value}
	}

	if len(changes) > 0 {
		if err := s.AuditService.LogChange(ctx, common_models.AuditActionSettings, string(entityType), entityID, changes); err != nil {
			s.Logger.Warn("failed to audit settings update", zap.Error(err))
		}
	}

	return result, nil
}

// writeAggregate stores an aggregate-mode field into its legacy bag,
// encoding with the forward transform since the bag holds the legacy
// representation.
func (s *SettingsServiceImpl) writeAggregate(ctx context.Context, entityID string, entry *mapper.MappingEntry, value interface{}, before map[string]interface{}) (interface{}, *meta.ChangeResult, error) {
	if len(entry.Targets) == 0 {
		return nil, nil, fmt.Errorf("field %q has no storage target", entry.Path)
	}
	target := entry.Targets[0]

	bag, ok := common_models.AsBag(before[target.Bag])
	if !ok {
		bag = make(map[string]interface{})
	}
	old := bag[target.Key]
	bag[target.Key] = entry.ForwardValue(target, value)

	mirror, err := s.Meta.Set(ctx, entityID, target.Bag, bag)
	if err == nil {
		// Later fields patching the same bag must see this write.
		before[target.Bag] = bag
	}
	return old, mirror, err
}
