package settings

import (
	"context"
	"fmt"
	"testing"
	"time"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/features/capability"
	"go-lms-bridge/internal/features/mapper"
	"go-lms-bridge/internal/features/meta"
	"go-lms-bridge/internal/features/sync"

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

type mockFinder struct {
	types map[string]common_models.EntityType
}

func (f *mockFinder) FindType(_ context.Context, id string) (common_models.EntityType, error) {
	entityType, ok := f.types[id]
	if !ok {
		return "", fmt.Errorf("entity %s not found", id)
	}
	return entityType, nil
}

type mockCaps struct {
	enabled map[string]bool
}

func (m *mockCaps) IsEnabled(_ context.Context, name string) bool { return m.enabled[name] }

func (m *mockCaps) SetEnabled(_ context.Context, name string, enabled bool) error {
	m.enabled[name] = enabled
	return nil
}

func (m *mockCaps) List(_ context.Context) ([]capability.Capability, error) { return nil, nil }

type mockAudit struct {
	changes []map[string]common_models.Change
}

func (m *mockAudit) LogChange(_ context.Context, _ common_models.AuditAction, _ string, _ string, changes map[string]common_models.Change) error {
	m.changes = append(m.changes, changes)
	return nil
}

func (m *mockAudit) ListLogs(_ context.Context, _ map[string]interface{}, _, _ int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type memSyncLogRepo struct{}

func (r *memSyncLogRepo) Create(_ context.Context, _ *sync.SyncLogEntry) error { return nil }

func (r *memSyncLogRepo) List(_ context.Context, _ map[string]interface{}, _, _ int64) ([]sync.SyncLogEntry, error) {
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

type fixture struct {
	settings SettingsService
	repo     *memMetaRepo
	auditor  *mockAudit
}

// newFixture wires the real assembler, meta store and sync engine over
// in-memory storage so a settings patch exercises the full mirror path.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	mapperSvc, err := mapper.NewMapperService(&mockMapperRepo{}, &mockAudit{}, zap.NewNop())
	if err != nil {
		t.Fatalf("mapper service: %v", err)
	}

	repo := newMemMetaRepo()
	finder := &mockFinder{types: map[string]common_models.EntityType{
		"c1": common_models.EntityTypeCourse,
		"l1": common_models.EntityTypeLesson,
		"a1": common_models.EntityTypeAssignment,
		"b1": common_models.EntityTypeBundle,
	}}
	caps := &mockCaps{enabled: map[string]bool{
		"preview":      true,
		"content_drip": true,
		"woocommerce":  true,
	}}
	auditor := &mockAudit{}

	metaSvc := meta.NewMetaService(repo, finder, zap.NewNop())
	engine := sync.NewSyncService(
		&config.Config{SyncDebounce: 3 * time.Second},
		sync.SystemClock(),
		metaSvc,
		mapperSvc,
		caps,
		finder,
		&memSyncLogRepo{},
		auditor,
		nil,
		zap.NewNop(),
	)
	metaSvc.RegisterHandler(engine)

	return &fixture{
		settings: NewSettingsService(metaSvc, mapperSvc, finder, auditor, zap.NewNop()),
		repo:     repo,
		auditor:  auditor,
	}
}

func path(t *testing.T, doc map[string]interface{}, parts ...string) interface{} {
	t.Helper()
	var node interface{} = doc
	for _, part := range parts {
		m, ok := node.(map[string]interface{})
		if !ok {
			t.Fatalf("path %v: %v is not a map", parts, node)
		}
		node = m[part]
	}
	return node
}

func TestGetSettingsFullyDefaulted(t *testing.T) {
	f := newFixture(t)

	doc, err := f.settings.GetSettings(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}

	if got := path(t, doc, "course_level"); got != "all_levels" {
		t.Errorf("course_level = %v", got)
	}
	if got := path(t, doc, "enable_qna"); got != true {
		t.Errorf("enable_qna = %v", got)
	}
	if got := path(t, doc, "pricing", "type"); got != "free" {
		t.Errorf("pricing.type = %v", got)
	}
	if got := path(t, doc, "maximum_students"); got != nil {
		t.Errorf("maximum_students default should be nil, got %v", got)
	}
	if got := path(t, doc, "enrollment", "pause"); got != false {
		t.Errorf("enrollment.pause = %v", got)
	}
}

func TestGetSettingsReadsAggregateBag(t *testing.T) {
	f := newFixture(t)
	f.repo.values["c1"] = map[string]interface{}{
		"_tutor_course_settings": map[string]interface{}{"maximum_students": "50"},
	}

	doc, err := f.settings.GetSettings(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}

	if got := path(t, doc, "maximum_students"); got != 50 {
		t.Errorf("maximum_students = %v, want 50", got)
	}
}

func TestGetSettingsUnknownEntity(t *testing.T) {
	f := newFixture(t)

	if _, err := f.settings.GetSettings(context.Background(), "missing"); err == nil {
		t.Fatal("unknown entity should fail")
	}
}

func TestUpdateSettingsMirrorsToLegacy(t *testing.T) {
	f := newFixture(t)

	result, err := f.settings.UpdateSettings(context.Background(), "c1", map[string]interface{}{
		"course_level":     "expert",
		"is_public_course": true,
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if len(result.Updated) != 2 {
		t.Fatalf("updated = %v", result.Updated)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v", result.Warnings)
	}

	// Canonical written, legacy mirrored, one pass each.
	store := f.repo.values["c1"]
	if store["_lms_course_level"] != "expert" || store["_tutor_course_level"] != "expert" {
		t.Errorf("course_level store = %v", store)
	}
	if store["_lms_is_public_course"] != true || store["_tutor_is_public_course"] != "yes" {
		t.Errorf("is_public_course store = %v", store)
	}

	// And the assembled view reflects it.
	doc, err := f.settings.GetSettings(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got := path(t, doc, "course_level"); got != "expert" {
		t.Errorf("course_level = %v", got)
	}

	if len(f.auditor.changes) == 0 {
		t.Error("settings update should leave an audit entry")
	}
}

func TestUpdateSettingsNestedPayload(t *testing.T) {
	f := newFixture(t)

	result, err := f.settings.UpdateSettings(context.Background(), "c1", map[string]interface{}{
		"enrollment": map[string]interface{}{"pause": true},
		"pricing":    map[string]interface{}{"type": "paid", "price": 49.99},
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if len(result.Updated) != 3 {
		t.Fatalf("updated = %v", result.Updated)
	}

	store := f.repo.values["c1"]
	if store["_tutor_pause_enrollment"] != "yes" || store["_tutor_enrollment_status"] != "pause" {
		t.Errorf("enrollment mirrors = %v", store)
	}
	if store["_tutor_course_price"] != "49.99" {
		t.Errorf("price mirror = %v", store["_tutor_course_price"])
	}
}

func TestUpdateSettingsUnknownFieldIsWarning(t *testing.T) {
	f := newFixture(t)

	result, err := f.settings.UpdateSettings(context.Background(), "c1", map[string]interface{}{
		"course_level": "expert",
		"no_such":      "field",
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	if len(result.Updated) != 1 || len(result.Skipped) != 1 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Warnings) == 0 {
		t.Error("unknown field should produce a warning")
	}
}

func TestUpdateSettingsAggregateField(t *testing.T) {
	f := newFixture(t)

	if _, err := f.settings.UpdateSettings(context.Background(), "c1", map[string]interface{}{
		"maximum_students": 50,
	}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	bag, ok := f.repo.values["c1"]["_tutor_course_settings"].(map[string]interface{})
	if !ok {
		t.Fatalf("bag missing: %v", f.repo.values["c1"])
	}
	if bag["maximum_students"] != "50" {
		t.Errorf("bag value = %v, want \"50\"", bag["maximum_students"])
	}

	// Unlimited round-trips back to nil through the assembled view.
	if _, err := f.settings.UpdateSettings(context.Background(), "c1", map[string]interface{}{
		"maximum_students": nil,
	}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	doc, err := f.settings.GetSettings(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got := path(t, doc, "maximum_students"); got != nil {
		t.Errorf("maximum_students = %v, want nil", got)
	}
}

func TestUpdateSettingsSameBagTwiceInOnePatch(t *testing.T) {
	f := newFixture(t)

	if _, err := f.settings.UpdateSettings(context.Background(), "a1", map[string]interface{}{
		"total_points": 20,
		"pass_points":  12,
	}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	bag, ok := f.repo.values["a1"]["assignment_option"].(map[string]interface{})
	if !ok {
		t.Fatalf("bag missing: %v", f.repo.values["a1"])
	}
	if bag["total_mark"] != 20 || bag["pass_mark"] != 12 {
		t.Errorf("bag = %v", bag)
	}
}

func TestFlattenExpandRoundTrip(t *testing.T) {
	nested := map[string]interface{}{
		"pricing": map[string]interface{}{"type": "paid", "price": 10.0},
		"level":   "expert",
		"tags":    []interface{}{"a", "b"},
	}

	flat := Flatten(nested)
	if flat["pricing.type"] != "paid" || flat["level"] != "expert" {
		t.Errorf("flat = %v", flat)
	}
	if _, ok := flat["tags"].([]interface{}); !ok {
		t.Error("lists are leaves")
	}

	back := Expand(flat)
	if path(t, back, "pricing", "type") != "paid" {
		t.Errorf("expand = %v", back)
	}
}
