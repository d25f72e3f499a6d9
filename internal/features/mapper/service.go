package mapper

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/features/audit"

	"go.uber.org/zap"
)

// MapperService resolves mapping entries in every direction the sync
// engine needs: by canonical path, by canonical meta key, and by the
// legacy meta key a change arrived on.
type MapperService interface {
	Resolve(entityType common_models.EntityType, path string) (*MappingEntry, bool)
	ResolveCanonicalKey(entityType common_models.EntityType, metaKey string) (*MappingEntry, bool)
	ResolveLegacy(entityType common_models.EntityType, metaKey string) []LegacyMatch
	Entries(entityType common_models.EntityType) []*MappingEntry

	CreateCustomMapping(ctx context.Context, mapping *CustomMapping) (*CustomMapping, error)
	ListCustomMappings(ctx context.Context, entityType common_models.EntityType) ([]CustomMapping, error)
	DeleteCustomMapping(ctx context.Context, id string) error
	Reload(ctx context.Context) error
}

// typeIndex is the compiled lookup structure for one entity type.
type typeIndex struct {
	entries      []*MappingEntry
	byPath       map[string]*MappingEntry
	byCanonical  map[string]*MappingEntry
	byLegacyMeta map[string][]LegacyMatch
}

var staticMappings = map[common_models.EntityType][]*MappingEntry{
	common_models.EntityTypeCourse:     courseMappings,
	common_models.EntityTypeLesson:     lessonMappings,
	common_models.EntityTypeAssignment: assignmentMappings,
	common_models.EntityTypeBundle:     bundleMappings,
}

type MapperServiceImpl struct {
	repo   MapperRepository
	audit  audit.AuditService
	logger *zap.Logger

	mu      stdsync.RWMutex
	indexes map[common_models.EntityType]*typeIndex
}

func NewMapperService(repo MapperRepository, auditService audit.AuditService, logger *zap.Logger) (MapperService, error) {
	s := &MapperServiceImpl{
		repo:   repo,
		audit:  auditService,
		logger: logger,
	}

	indexes, err := buildIndexes(nil)
	if err != nil {
		return nil, err
	}
	s.indexes = indexes

	return s, nil
}

// buildIndexes compiles the static tables plus the given custom rows,
// rejecting any entry that would claim a canonical path or legacy
// target already owned by another field.
func buildIndexes(custom []CustomMapping) (map[common_models.EntityType]*typeIndex, error) {
	indexes := make(map[common_models.EntityType]*typeIndex)

	for _, entityType := range common_models.AllEntityTypes() {
		idx := &typeIndex{
			byPath:       make(map[string]*MappingEntry),
			byCanonical:  make(map[string]*MappingEntry),
			byLegacyMeta: make(map[string][]LegacyMatch),
		}
		for _, entry := range staticMappings[entityType] {
			if err := idx.add(entry); err != nil {
				return nil, fmt.Errorf("%s mapping table: %w", entityType, err)
			}
		}
		indexes[entityType] = idx
	}

	for i := range custom {
		row := custom[i]
		idx, ok := indexes[row.EntityType]
		if !ok {
			return nil, fmt.Errorf("custom mapping %s: unknown entity type %q", row.Path, row.EntityType)
		}
		if err := idx.add(row.ToEntry()); err != nil {
			return nil, fmt.Errorf("custom mapping %s: %w", row.Path, err)
		}
	}

	return indexes, nil
}

func (idx *typeIndex) add(entry *MappingEntry) error {
	if entry.Path == "" {
		return fmt.Errorf("mapping entry has empty path")
	}
	if _, exists := idx.byPath[entry.Path]; exists {
		return fmt.Errorf("duplicate path %q", entry.Path)
	}
	if entry.CanonicalKey != "" {
		if other, exists := idx.byCanonical[entry.CanonicalKey]; exists {
			return fmt.Errorf("canonical key %q already owned by %q", entry.CanonicalKey, other.Path)
		}
	}
	// A legacy slot may mirror at most one canonical field, otherwise
	// reverse sync would be ambiguous.
	seen := make(map[string]bool)
	for _, target := range entry.Targets {
		name := target.Name()
		if seen[name] {
			return fmt.Errorf("entry %q lists legacy target %q twice", entry.Path, name)
		}
		seen[name] = true
		for _, match := range idx.byLegacyMeta[target.MetaKey()] {
			if match.Target.Name() == name {
				return fmt.Errorf("legacy target %q already owned by %q", name, match.Entry.Path)
			}
		}
	}

	idx.entries = append(idx.entries, entry)
	idx.byPath[entry.Path] = entry
	if entry.CanonicalKey != "" {
		idx.byCanonical[entry.CanonicalKey] = entry
	}
	for _, target := range entry.Targets {
		idx.byLegacyMeta[target.MetaKey()] = append(idx.byLegacyMeta[target.MetaKey()], LegacyMatch{
			Entry:  entry,
			Target: target,
		})
	}
	return nil
}

func (s *MapperServiceImpl) index(entityType common_models.EntityType) *typeIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexes[entityType]
}

func (s *MapperServiceImpl) Resolve(entityType common_models.EntityType, path string) (*MappingEntry, bool) {
	idx := s.index(entityType)
	if idx == nil {
		return nil, false
	}
	entry, ok := idx.byPath[path]
	return entry, ok
}

func (s *MapperServiceImpl) ResolveCanonicalKey(entityType common_models.EntityType, metaKey string) (*MappingEntry, bool) {
	idx := s.index(entityType)
	if idx == nil {
		return nil, false
	}
	entry, ok := idx.byCanonical[metaKey]
	return entry, ok
}

func (s *MapperServiceImpl) ResolveLegacy(entityType common_models.EntityType, metaKey string) []LegacyMatch {
	idx := s.index(entityType)
	if idx == nil {
		return nil
	}
	return idx.byLegacyMeta[metaKey]
}

func (s *MapperServiceImpl) Entries(entityType common_models.EntityType) []*MappingEntry {
	idx := s.index(entityType)
	if idx == nil {
		return nil
	}
	return idx.entries
}

func (s *MapperServiceImpl) CreateCustomMapping(ctx context.Context, mapping *CustomMapping) (*CustomMapping, error) {
	if !mapping.EntityType.Valid() {
		return nil, fmt.Errorf("invalid entity type: %s", mapping.EntityType)
	}
	if mapping.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if mapping.CanonicalKey == "" {
		return nil, fmt.Errorf("canonical_key is required")
	}
	if mapping.ForwardScript != "" {
		if err := ValidateScript(mapping.ForwardScript); err != nil {
			return nil, fmt.Errorf("forward script: %w", err)
		}
	}
	if mapping.ReverseScript != "" {
		if err := ValidateScript(mapping.ReverseScript); err != nil {
			return nil, fmt.Errorf("reverse script: %w", err)
		}
	}

	existing, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if _, err := buildIndexes(append(existing, *mapping)); err != nil {
		return nil, err
	}

	now := time.Now()
	mapping.CreatedAt = now
	mapping.UpdatedAt = now

	created, err := s.repo.Create(ctx, mapping)
	if err != nil {
		return nil, err
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	_ = s.audit.LogChange(ctx, common_models.AuditActionMapping, "custom_mapping", created.ID.Hex(), map[string]common_models.Change{
		"path":          {New: created.Path},
		"canonical_key": {New: created.CanonicalKey},
	})

	s.logger.Info("Custom mapping created",
		zap.String("entity_type", string(mapping.EntityType)),
		zap.String("path", mapping.Path),
	)
	return created, nil
}

func (s *MapperServiceImpl) ListCustomMappings(ctx context.Context, entityType common_models.EntityType) ([]CustomMapping, error) {
	if entityType != "" && !entityType.Valid() {
		return nil, fmt.Errorf("invalid entity type: %s", entityType)
	}
	return s.repo.List(ctx, entityType)
}

func (s *MapperServiceImpl) DeleteCustomMapping(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.LogChange(ctx, common_models.AuditActionMapping, "custom_mapping", id, nil)
	return s.Reload(ctx)
}

// Reload recompiles the lookup indexes from the static tables plus the
// stored custom rows. Rows that no longer compile are skipped with a
// warning so one bad row cannot take every mapping offline.
func (s *MapperServiceImpl) Reload(ctx context.Context) error {
	custom, err := s.repo.List(ctx, "")
	if err != nil {
		return err
	}

	indexes, err := buildIndexes(custom)
	if err != nil {
		s.logger.Warn("Custom mapping set failed to compile, keeping previous indexes", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.indexes = indexes
	s.mu.Unlock()

	s.logger.Info("Mapping indexes reloaded", zap.Int("custom_mappings", len(custom)))
	return nil
}
