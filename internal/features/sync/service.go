package sync

import (
	"context"
	"fmt"
	"time"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/features/audit"
	"go-lms-bridge/internal/features/capability"
	"go-lms-bridge/internal/features/mapper"
	"go-lms-bridge/internal/features/meta"

	"go.uber.org/zap"
)

// EntityFinder resolves an entity's type tag; implemented by the entity
// repository and adapted in at wiring time.
type EntityFinder interface {
	FindType(ctx context.Context, id string) (common_models.EntityType, error)
}

// EventBroadcaster pushes sync events to connected websocket clients.
type EventBroadcaster interface {
	Broadcast(event interface{})
}

// SyncService is the bidirectional mirror engine. It hangs off the meta
// store's change feed: canonical writes fan out to legacy keys, legacy
// writes fold back into canonical fields, and the loop guard keeps the
// two from chasing each other.
type SyncService interface {
	meta.ChangeHandler

	SyncField(ctx context.Context, entityID string, entityType common_models.EntityType, path string) (*SyncResult, error)
	ResyncEntity(ctx context.Context, entityID string) ([]SyncResult, error)
	ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]SyncLogEntry, error)
}

type SyncServiceImpl struct {
	Meta         meta.MetaService
	Mapper       mapper.MapperService
	Capabilities capability.CapabilityService
	Entities     EntityFinder
	Repo         SyncLogRepository
	AuditService audit.AuditService
	Broadcaster  EventBroadcaster
	Guard        *LoopGuard
	Logger       *zap.Logger
}

func NewSyncService(
	cfg *config.Config,
	clock Clock,
	metaService meta.MetaService,
	mapperService mapper.MapperService,
	capabilityService capability.CapabilityService,
	entities EntityFinder,
	repo SyncLogRepository,
	auditService audit.AuditService,
	broadcaster EventBroadcaster,
	logger *zap.Logger,
) SyncService {
	return &SyncServiceImpl{
		Meta:         metaService,
		Mapper:       mapperService,
		Capabilities: capabilityService,
		Entities:     entities,
		Repo:         repo,
		AuditService: auditService,
		Broadcaster:  broadcaster,
		Guard:        NewLoopGuard(clock, cfg.SyncDebounce),
		Logger:       logger,
	}
}

// HandleMetaChange classifies every property write. A canonical key
// runs the forward mirror, a mapped legacy key runs the reverse mirror,
// anything else is not ours. Echoes of our own writes are recognized by
// the loop guard and dropped.
func (s *SyncServiceImpl) HandleMetaChange(ctx context.Context, change common_models.MetaChange) error {
	if !change.EntityType.Valid() {
		return nil
	}

	if entry, ok := s.Mapper.ResolveCanonicalKey(change.EntityType, change.Key); ok {
		if s.Guard.IsSuppressed(change.EntityID, DirectionReverse) {
			s.recordSuppressed(ctx, change, DirectionForward)
			return nil
		}
		result := s.syncForward(ctx, change.EntityID, change.EntityType, entry, change.Value)
		if len(result.Failures) > 0 {
			return &PartialSyncError{Key: change.Key, Failures: result.Failures}
		}
		return nil
	}

	if matches := s.Mapper.ResolveLegacy(change.EntityType, change.Key); len(matches) > 0 {
		if s.Guard.IsSuppressed(change.EntityID, DirectionForward) {
			s.recordSuppressed(ctx, change, DirectionReverse)
			return nil
		}
		result := s.syncReverse(ctx, change.EntityID, change.EntityType, change.Key, change.Value, matches)
		if len(result.Failures) > 0 {
			return &PartialSyncError{Key: change.Key, Failures: result.Failures}
		}
		return nil
	}

	// Unmapped key, nothing to mirror.
	return nil
}

// syncForward pushes one canonical field out to each of its legacy
// targets.
func (s *SyncServiceImpl) syncForward(ctx context.Context, entityID string, entityType common_models.EntityType, entry *mapper.MappingEntry, value interface{}) *SyncResult {
	result := &SyncResult{
		EntityID:   entityID,
		EntityType: entityType,
		Direction:  DirectionForward,
		Key:        entry.Path,
	}

	if entry.Capability != "" && !s.Capabilities.IsEnabled(ctx, entry.Capability) {
		result.Outcome = OutcomeGatedOff
		s.finish(ctx, result)
		return result
	}

	// Our legacy writes below will echo back through the change feed;
	// mark first so the reverse path drops them.
	s.Guard.Mark(entityID, DirectionForward)

	for _, target := range entry.Targets {
		encoded := entry.ForwardValue(target, value)
		if err := s.writeLegacy(ctx, entityID, target, encoded); err != nil {
			result.Failures = append(result.Failures, FieldFailure{Target: target.Name(), Reason: err.Error()})
			continue
		}
		result.Written = append(result.Written, target.Name())
	}

	result.Outcome = OutcomeSynced
	s.finish(ctx, result)
	return result
}

// writeLegacy stores a value at a dedicated legacy key, or merges it
// into an aggregate bag without clobbering the bag's other members.
func (s *SyncServiceImpl) writeLegacy(ctx context.Context, entityID string, target mapper.LegacyTarget, value interface{}) error {
	if target.Bag == "" {
		_, err := s.Meta.Set(ctx, entityID, target.Key, value)
		return err
	}

	current, err := s.Meta.Get(ctx, entityID, target.Bag)
	if err != nil {
		return err
	}
	bag, ok := common_models.AsBag(current)
	if !ok {
		// Missing or malformed bag, start fresh.
		bag = make(map[string]interface{})
	}
	bag[target.Key] = value

	_, err = s.Meta.Set(ctx, entityID, target.Bag, bag)
	return err
}

// syncReverse folds a legacy write back into the canonical fields it
// mirrors. Aggregate-mode fields have no canonical slot and are read
// straight from the bag at assembly time, so they are skipped here.
func (s *SyncServiceImpl) syncReverse(ctx context.Context, entityID string, entityType common_models.EntityType, metaKey string, value interface{}, matches []mapper.LegacyMatch) *SyncResult {
	result := &SyncResult{
		EntityID:   entityID,
		EntityType: entityType,
		Direction:  DirectionReverse,
		Key:        metaKey,
	}

	s.Guard.Mark(entityID, DirectionReverse)

	gated := 0
	for _, match := range matches {
		entry := match.Entry

		if entry.Mode == mapper.StorageAggregate {
			result.Skipped = append(result.Skipped, entry.Path)
			continue
		}
		if entry.Capability != "" && !s.Capabilities.IsEnabled(ctx, entry.Capability) {
			result.Skipped = append(result.Skipped, entry.Path)
			gated++
			continue
		}

		raw := value
		if match.Target.Bag != "" {
			bag, ok := common_models.AsBag(value)
			if !ok {
				result.Failures = append(result.Failures, FieldFailure{Target: match.Target.Name(), Reason: "aggregate value is not a map"})
				continue
			}
			raw = bag[match.Target.Key]
		}

		decoded := entry.ReverseValue(match.Target, raw)
		if _, err := s.Meta.Set(ctx, entityID, entry.CanonicalKey, decoded); err != nil {
			result.Failures = append(result.Failures, FieldFailure{Target: entry.CanonicalKey, Reason: err.Error()})
			continue
		}
		result.Written = append(result.Written, entry.CanonicalKey)
	}

	switch {
	case len(result.Written) > 0 || len(result.Failures) > 0:
		result.Outcome = OutcomeSynced
	case gated > 0:
		result.Outcome = OutcomeGatedOff
	default:
		result.Outcome = OutcomeNoMapping
	}
	s.finish(ctx, result)
	return result
}

// SyncField re-pushes one canonical field to its legacy targets using
// whatever is stored now, falling back to the field default. Used by
// manual resyncs and drift repair.
func (s *SyncServiceImpl) SyncField(ctx context.Context, entityID string, entityType common_models.EntityType, path string) (*SyncResult, error) {
	entry, ok := s.Mapper.Resolve(entityType, path)
	if !ok {
		return nil, fmt.Errorf("no mapping for %s field %q", entityType, path)
	}
	if entry.Mode == mapper.StorageAggregate {
		return &SyncResult{
			EntityID:   entityID,
			EntityType: entityType,
			Direction:  DirectionForward,
			Key:        path,
			Outcome:    OutcomeNoMapping,
		}, nil
	}

	value, err := s.Meta.Get(ctx, entityID, entry.CanonicalKey)
	if err != nil {
		return nil, err
	}
	if value == nil && entry.Default != nil {
		value = entry.Default
	}

	return s.syncForward(ctx, entityID, entityType, entry, value), nil
}

// ResyncEntity re-pushes every mapped field of one entity.
func (s *SyncServiceImpl) ResyncEntity(ctx context.Context, entityID string) ([]SyncResult, error) {
	entityType, err := s.Entities.FindType(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("unknown entity %s: %w", entityID, err)
	}

	var results []SyncResult
	for _, entry := range s.Mapper.Entries(entityType) {
		if entry.Mode == mapper.StorageAggregate || len(entry.Targets) == 0 {
			continue
		}
		result, err := s.SyncField(ctx, entityID, entityType, entry.Path)
		if err != nil {
			results = append(results, SyncResult{
				EntityID:   entityID,
				EntityType: entityType,
				Direction:  DirectionForward,
				Key:        entry.Path,
				Outcome:    OutcomeSynced,
				Failures:   []FieldFailure{{Target: entry.Path, Reason: err.Error()}},
			})
			continue
		}
		results = append(results, *result)
	}

	if err := s.AuditService.LogChange(ctx, common_models.AuditActionSync, string(entityType), entityID, map[string]common_models.Change{
		"resync": {New: len(results)},
	}); err != nil {
		s.Logger.Warn("failed to audit resync", zap.Error(err))
	}

	return results, nil
}

func (s *SyncServiceImpl) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]SyncLogEntry, error) {
	return s.Repo.List(ctx, filters, page, limit)
}

func (s *SyncServiceImpl) recordSuppressed(ctx context.Context, change common_models.MetaChange, dir Direction) {
	s.Logger.Debug("suppressed echo",
		zap.String("entity_id", change.EntityID),
		zap.String("direction", string(dir)),
		zap.String("key", change.Key),
	)
	s.persistLog(ctx, &SyncResult{
		EntityID:   change.EntityID,
		EntityType: change.EntityType,
		Direction:  dir,
		Key:        change.Key,
		Outcome:    OutcomeSuppressed,
	})
}

// finish persists the log row and pushes the event feed for a completed
// mirror pass.
func (s *SyncServiceImpl) finish(ctx context.Context, result *SyncResult) {
	s.Logger.Info("sync pass",
		zap.String("entity_id", result.EntityID),
		zap.String("direction", string(result.Direction)),
		zap.String("key", result.Key),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("written", len(result.Written)),
		zap.Int("failed", len(result.Failures)),
	)

	s.persistLog(ctx, result)

	if s.Broadcaster != nil {
		s.Broadcaster.Broadcast(SyncEvent{
			Event:      "sync",
			EntityID:   result.EntityID,
			EntityType: result.EntityType,
			Direction:  result.Direction,
			Key:        result.Key,
			Outcome:    result.Outcome,
			Timestamp:  time.Now(),
		})
	}
}

func (s *SyncServiceImpl) persistLog(ctx context.Context, result *SyncResult) {
	entry := &SyncLogEntry{
		EntityID:   result.EntityID,
		EntityType: result.EntityType,
		Direction:  result.Direction,
		Key:        result.Key,
		Outcome:    result.Outcome,
		Written:    result.Written,
		Skipped:    result.Skipped,
		Failures:   result.Failures,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		s.Logger.Warn("failed to persist sync log", zap.Error(err))
	}
}
