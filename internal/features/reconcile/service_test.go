package reconcile

import (
	"context"
	"fmt"
	"testing"
	"time"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/features/capability"
	"go-lms-bridge/internal/features/entity"
	"go-lms-bridge/internal/features/mapper"
	"go-lms-bridge/internal/features/meta"
	sync_feature "go-lms-bridge/internal/features/sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memMetaRepo struct {
	values map[string]map[string]interface{}
}

func newMemMetaRepo() *memMetaRepo {
	return &memMetaRepo{values: make(map[string]map[string]interface{})}
}

func (r *memMetaRepo) Get(_ context.Context, entityID, key string) (interface{}, error) {
	return r.values[entityID][key], nil
}

func (r *memMetaRepo) GetAll(_ context.Context, entityID string) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for key, value := range r.values[entityID] {
		out[key] = value
	}
	return out, nil
}

func (r *memMetaRepo) Set(_ context.Context, entityID, key string, value interface{}) error {
	if r.values[entityID] == nil {
		r.values[entityID] = make(map[string]interface{})
	}
	r.values[entityID][key] = value
	return nil
}

func (r *memMetaRepo) Delete(_ context.Context, entityID, key string) error {
	delete(r.values[entityID], key)
	return nil
}

func (r *memMetaRepo) DeleteAll(_ context.Context, entityID string) error {
	delete(r.values, entityID)
	return nil
}

func (r *memMetaRepo) EnsureIndexes(_ context.Context) error { return nil }

type memEntityRepo struct {
	entities []entity.Entity
}

func (r *memEntityRepo) Create(_ context.Context, e *entity.Entity) error {
	r.entities = append(r.entities, *e)
	return nil
}

func (r *memEntityRepo) Get(_ context.Context, id string) (*entity.Entity, error) {
	for i := range r.entities {
		if r.entities[i].ID.Hex() == id {
			return &r.entities[i], nil
		}
	}
	return nil, nil
}

func (r *memEntityRepo) FindType(_ context.Context, id string) (common_models.EntityType, error) {
	for i := range r.entities {
		if r.entities[i].ID.Hex() == id {
			return r.entities[i].Type, nil
		}
	}
	return "", fmt.Errorf("entity %s not found", id)
}

func (r *memEntityRepo) List(_ context.Context, entityType common_models.EntityType, limit, offset int64) ([]entity.Entity, error) {
	var matched []entity.Entity
	for _, e := range r.entities {
		if e.Type == entityType {
			matched = append(matched, e)
		}
	}
	if offset >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[offset:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *memEntityRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *memEntityRepo) EnsureIndexes(_ context.Context) error { return nil }

type mockCaps struct {
	enabled map[string]bool
}

func (m *mockCaps) IsEnabled(_ context.Context, name string) bool { return m.enabled[name] }

func (m *mockCaps) SetEnabled(_ context.Context, name string, enabled bool) error {
	m.enabled[name] = enabled
	return nil
}

func (m *mockCaps) List(_ context.Context) ([]capability.Capability, error) { return nil, nil }

type mockAudit struct{}

func (m *mockAudit) LogChange(_ context.Context, _ common_models.AuditAction, _ string, _ string, _ map[string]common_models.Change) error {
	return nil
}

func (m *mockAudit) ListLogs(_ context.Context, _ map[string]interface{}, _, _ int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type memRunRepo struct {
	runs []ReconcileRun
}

func (r *memRunRepo) Create(_ context.Context, run *ReconcileRun) (*ReconcileRun, error) {
	run.ID = primitive.NewObjectID()
	r.runs = append(r.runs, *run)
	return run, nil
}

func (r *memRunRepo) Update(_ context.Context, run *ReconcileRun) error {
	for i := range r.runs {
		if r.runs[i].ID == run.ID {
			r.runs[i] = *run
		}
	}
	return nil
}

func (r *memRunRepo) List(_ context.Context, _, _ int64) ([]ReconcileRun, error) {
	return r.runs, nil
}

type memSyncLogRepo struct{}

func (r *memSyncLogRepo) Create(_ context.Context, _ *sync_feature.SyncLogEntry) error { return nil }

func (r *memSyncLogRepo) List(_ context.Context, _ map[string]interface{}, _, _ int64) ([]sync_feature.SyncLogEntry, error) {
	return nil, nil
}

func (r *memSyncLogRepo) EnsureIndexes(_ context.Context) error { return nil }

type mockMapperRepo struct{}

func (m *mockMapperRepo) Create(_ context.Context, mapping *mapper.CustomMapping) (*mapper.CustomMapping, error) {
	return mapping, nil
}

func (m *mockMapperRepo) List(_ context.Context, _ common_models.EntityType) ([]mapper.CustomMapping, error) {
	return nil, nil
}

func (m *mockMapperRepo) Delete(_ context.Context, _ string) error { return nil }

func (m *mockMapperRepo) EnsureIndexes(_ context.Context) error { return nil }

type reconcileFixture struct {
	service  ReconcileService
	metaRepo *memMetaRepo
	courseID string
}

func newReconcileFixture(t *testing.T) *reconcileFixture {
	t.Helper()

	mapperSvc, err := mapper.NewMapperService(&mockMapperRepo{}, &mockAudit{}, zap.NewNop())
	if err != nil {
		t.Fatalf("mapper service: %v", err)
	}

	courseID := primitive.NewObjectID()
	entities := &memEntityRepo{entities: []entity.Entity{
		{ID: courseID, Type: common_models.EntityTypeCourse, Title: "Course"},
	}}
	metaRepo := newMemMetaRepo()
	caps := &mockCaps{enabled: map[string]bool{"woocommerce": true}}
	auditor := &mockAudit{}

	metaSvc := meta.NewMetaService(metaRepo, entities, zap.NewNop())
	syncSvc := sync_feature.NewSyncService(
		&config.Config{SyncDebounce: 3 * time.Second},
		sync_feature.SystemClock(),
		metaSvc,
		mapperSvc,
		caps,
		entities,
		&memSyncLogRepo{},
		auditor,
		nil,
		zap.NewNop(),
	)
	metaSvc.RegisterHandler(syncSvc)

	service := NewReconcileService(
		&config.Config{ReconcileSchedule: "@hourly"},
		entities,
		metaSvc,
		mapperSvc,
		caps,
		syncSvc,
		&memRunRepo{},
		auditor,
		zap.NewNop(),
	)

	return &reconcileFixture{
		service:  service,
		metaRepo: metaRepo,
		courseID: courseID.Hex(),
	}
}

func TestReconcileRepairsDriftedMirror(t *testing.T) {
	f := newReconcileFixture(t)

	// A fully consistent entity, then a direct edit breaks one mirror.
	f.metaRepo.values[f.courseID] = consistentCourseProps()
	f.metaRepo.values[f.courseID]["_tutor_course_level"] = "tampered"

	run, err := f.service.Run(context.Background(), TriggerManual)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if run.Status != RunStatusCompleted {
		t.Errorf("status = %s", run.Status)
	}
	if run.Scanned != 1 {
		t.Errorf("scanned = %d", run.Scanned)
	}
	if run.Drifted != 1 {
		t.Errorf("drifted = %d, drifts: %+v", run.Drifted, run.Drifts)
	}
	if run.Repaired != 1 {
		t.Errorf("repaired = %d", run.Repaired)
	}

	if got := f.metaRepo.values[f.courseID]["_tutor_course_level"]; got != "expert" {
		t.Errorf("mirror after repair = %v, want expert", got)
	}
}

func TestReconcileCleanEntityNoDrift(t *testing.T) {
	f := newReconcileFixture(t)
	f.metaRepo.values[f.courseID] = consistentCourseProps()

	run, err := f.service.Run(context.Background(), TriggerManual)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if run.Drifted != 0 {
		t.Errorf("clean entity reported drift: %+v", run.Drifts)
	}
}

func TestReconcileSkipsGatedFields(t *testing.T) {
	f := newReconcileFixture(t)
	props := consistentCourseProps()
	// sale_price is gated behind woocommerce; break its mirror with the
	// capability off and the scan must not touch it.
	props["_tutor_course_sale_price"] = "999.00"
	f.metaRepo.values[f.courseID] = props

	svc := f.service.(*ReconcileServiceImpl)
	svc.Capabilities.(*mockCaps).enabled["woocommerce"] = false

	run, err := f.service.Run(context.Background(), TriggerManual)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Drifted != 0 {
		t.Errorf("gated field should be skipped, drifts: %+v", run.Drifts)
	}
	if got := f.metaRepo.values[f.courseID]["_tutor_course_sale_price"]; got != "999.00" {
		t.Errorf("gated mirror was touched: %v", got)
	}
}

// consistentCourseProps mirrors every course default plus an explicit
// expert level, exactly as a forward sync would have written them.
func consistentCourseProps() map[string]interface{} {
	return map[string]interface{}{
		"_lms_course_level":           "expert",
		"_tutor_course_level":         "expert",
		"_lms_is_public_course":       false,
		"_tutor_is_public_course":     "no",
		"_lms_enable_qna":             true,
		"_tutor_enable_qa":            "yes",
		"_lms_course_duration_hours":  0,
		"_lms_course_duration_minutes": 0,
		"_course_duration":            map[string]interface{}{"hours": 0, "minutes": 0},
		"_lms_enrollment_pause":       false,
		"_tutor_pause_enrollment":     "no",
		"_tutor_enrollment_status":    "open",
		"_lms_pricing_type":           "free",
		"_tutor_course_price_type":    "free",
		"_lms_pricing_price":          float64(0),
		"_tutor_course_price":         "0.00",
		"_lms_pricing_sale_price":     float64(0),
		"_tutor_course_sale_price":    "0.00",
		"_lms_intro_video_source":     "",
		"_lms_intro_video_url":        "",
		"_video":                      map[string]interface{}{"source": "", "source_video_url": ""},
		"_lms_attachments":            []interface{}{},
		"_tutor_attachments":          []interface{}{},
	}
}
