package reconcile

import (
	"context"
	"fmt"
	"time"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/features/audit"
	"go-lms-bridge/internal/features/capability"
	"go-lms-bridge/internal/features/entity"
	"go-lms-bridge/internal/features/mapper"
	"go-lms-bridge/internal/features/meta"
	sync_feature "go-lms-bridge/internal/features/sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const scanPageSize = 100

// ReconcileService walks the entity store looking for legacy mirrors
// that drifted away from their canonical fields (direct DB edits,
// partial sync failures) and repairs them with a forward re-push.
type ReconcileService interface {
	Run(ctx context.Context, trigger Trigger) (*ReconcileRun, error)
	ListRuns(ctx context.Context, page, limit int64) ([]ReconcileRun, error)
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
}

type ReconcileServiceImpl struct {
	Config       *config.Config
	Entities     entity.EntityRepository
	Meta         meta.MetaService
	Mapper       mapper.MapperService
	Capabilities capability.CapabilityService
	Sync         sync_feature.SyncService
	Repo         ReconcileRepository
	AuditService audit.AuditService
	Logger       *zap.Logger

	scheduler *cron.Cron
}

func NewReconcileService(
	cfg *config.Config,
	entities entity.EntityRepository,
	metaService meta.MetaService,
	mapperService mapper.MapperService,
	capabilityService capability.CapabilityService,
	syncService sync_feature.SyncService,
	repo ReconcileRepository,
	auditService audit.AuditService,
	logger *zap.Logger,
) ReconcileService {
	return &ReconcileServiceImpl{
		Config:       cfg,
		Entities:     entities,
		Meta:         metaService,
		Mapper:       mapperService,
		Capabilities: capabilityService,
		Sync:         syncService,
		Repo:         repo,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *ReconcileServiceImpl) InitializeScheduler(_ context.Context) error {
	s.scheduler = cron.New()

	if _, err := s.scheduler.AddFunc(s.Config.ReconcileSchedule, func() {
		if _, err := s.Run(context.Background(), TriggerCron); err != nil {
			s.Logger.Error("scheduled reconcile failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", s.Config.ReconcileSchedule, err)
	}

	s.scheduler.Start()
	s.Logger.Info("Reconcile scheduler started", zap.String("schedule", s.Config.ReconcileSchedule))
	return nil
}

func (s *ReconcileServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		stopCtx := s.scheduler.Stop()
		<-stopCtx.Done()
	}
	return nil
}

func (s *ReconcileServiceImpl) Run(ctx context.Context, trigger Trigger) (*ReconcileRun, error) {
	run := &ReconcileRun{
		Status:    RunStatusRunning,
		Trigger:   trigger,
		StartedAt: time.Now(),
	}
	run, err := s.Repo.Create(ctx, run)
	if err != nil {
		return nil, err
	}

	if err := s.scan(ctx, run); err != nil {
		run.Status = RunStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = RunStatusCompleted
	}
	run.FinishedAt = time.Now()

	if err := s.Repo.Update(ctx, run); err != nil {
		s.Logger.Warn("failed to persist reconcile run", zap.Error(err))
	}

	if err := s.AuditService.LogChange(ctx, common_models.AuditActionReconcile, "run", run.ID.Hex(), map[string]common_models.Change{
		"drifted":  {New: run.Drifted},
		"repaired": {New: run.Repaired},
	}); err != nil {
		s.Logger.Warn("failed to audit reconcile run", zap.Error(err))
	}

	s.Logger.Info("Reconcile run finished",
		zap.String("trigger", string(trigger)),
		zap.Int("scanned", run.Scanned),
		zap.Int("drifted", run.Drifted),
		zap.Int("repaired", run.Repaired),
		zap.Int("failed", run.Failed),
	)
	return run, nil
}

func (s *ReconcileServiceImpl) scan(ctx context.Context, run *ReconcileRun) error {
	for _, entityType := range common_models.AllEntityTypes() {
		for offset := int64(0); ; offset += scanPageSize {
			page, err := s.Entities.List(ctx, entityType, scanPageSize, offset)
			if err != nil {
				return err
			}
			if len(page) == 0 {
				break
			}
			for i := range page {
				if err := s.scanEntity(ctx, run, entityType, page[i].ID.Hex()); err != nil {
					return err
				}
			}
			if int64(len(page)) < scanPageSize {
				break
			}
		}
	}
	return nil
}

func (s *ReconcileServiceImpl) scanEntity(ctx context.Context, run *ReconcileRun, entityType common_models.EntityType, entityID string) error {
	run.Scanned++

	props, err := s.Meta.GetAll(ctx, entityID)
	if err != nil {
		return err
	}

	for _, entry := range s.Mapper.Entries(entityType) {
		if entry.Mode == mapper.StorageAggregate || len(entry.Targets) == 0 {
			continue
		}
		if entry.Capability != "" && !s.Capabilities.IsEnabled(ctx, entry.Capability) {
			continue
		}
		run.Checked++

		canonical, present := props[entry.CanonicalKey]
		if !present {
			canonical = entry.Default
		}

		drifted := false
		for _, target := range entry.Targets {
			expected := entry.ForwardValue(target, canonical)
			actual := s.legacyValue(props, target)
			if !valuesEqual(expected, actual) {
				drifted = true
				run.Drifts = append(run.Drifts, Drift{
					EntityID: entityID,
					Path:     entry.Path,
					Target:   target.Name(),
					Expected: expected,
					Actual:   actual,
				})
			}
		}
		if !drifted {
			continue
		}

		run.Drifted++
		// Repair re-pushes every target of the field, so one repair
		// covers all drifted mirrors of this entry.
		result, err := s.Sync.SyncField(ctx, entityID, entityType, entry.Path)
		if err != nil || len(result.Failures) > 0 {
			run.Failed++
			s.Logger.Warn("drift repair failed",
				zap.String("entity_id", entityID),
				zap.String("path", entry.Path),
				zap.Error(err))
			continue
		}
		run.Repaired++
		for i := range run.Drifts {
			if run.Drifts[i].EntityID == entityID && run.Drifts[i].Path == entry.Path {
				run.Drifts[i].Repaired = true
			}
		}
	}
	return nil
}

func (s *ReconcileServiceImpl) legacyValue(props map[string]interface{}, target mapper.LegacyTarget) interface{} {
	if target.Bag == "" {
		return props[target.Key]
	}
	bag, ok := common_models.AsBag(props[target.Bag])
	if !ok {
		return nil
	}
	return bag[target.Key]
}

func (s *ReconcileServiceImpl) ListRuns(ctx context.Context, page, limit int64) ([]ReconcileRun, error) {
	return s.Repo.List(ctx, page, limit)
}

// valuesEqual compares across the numeric shapes BSON and JSON decoding
// produce for the same stored value.
func valuesEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
