package meta

import (
	"context"
	"fmt"
	"testing"

	common_models "go-lms-bridge/internal/common/models"

	"go.uber.org/zap"
)

type memRepo struct {
	values map[string]map[string]interface{}
}

func newMemRepo() *memRepo {
	return &memRepo{values: make(map[string]map[string]interface{})}
}

func (r *memRepo) Get(_ context.Context, entityID, key string) (interface{}, error) {
	return r.values[entityID][key], nil
}

func (r *memRepo) GetAll(_ context.Context, entityID string) (map[string]interface{}, error) {
	return r.values[entityID], nil
}

func (r *memRepo) Set(_ context.Context, entityID, key string, value interface{}) error {
	if r.values[entityID] == nil {
		r.values[entityID] = make(map[string]interface{})
	}
	r.values[entityID][key] = value
	return nil
}

func (r *memRepo) Delete(_ context.Context, entityID, key string) error {
	delete(r.values[entityID], key)
	return nil
}

func (r *memRepo) DeleteAll(_ context.Context, entityID string) error {
	delete(r.values, entityID)
	return nil
}

func (r *memRepo) EnsureIndexes(_ context.Context) error { return nil }

type staticFinder struct{}

func (staticFinder) FindType(_ context.Context, id string) (common_models.EntityType, error) {
	if id == "missing" {
		return "", fmt.Errorf("entity %s not found", id)
	}
	return common_models.EntityTypeCourse, nil
}

type recordingHandler struct {
	changes []common_models.MetaChange
	fail    bool
}

func (h *recordingHandler) HandleMetaChange(_ context.Context, change common_models.MetaChange) error {
	h.changes = append(h.changes, change)
	if h.fail {
		return fmt.Errorf("mirror unavailable")
	}
	return nil
}

func TestSetNotifiesHandlersInOrder(t *testing.T) {
	svc := NewMetaService(newMemRepo(), staticFinder{}, zap.NewNop())
	first := &recordingHandler{}
	second := &recordingHandler{}
	svc.RegisterHandler(first)
	svc.RegisterHandler(second)

	result, err := svc.Set(context.Background(), "c1", "_lms_course_level", "expert")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	if result.Notified != 2 {
		t.Errorf("notified = %d", result.Notified)
	}
	if len(first.changes) != 1 || len(second.changes) != 1 {
		t.Fatal("every handler should see the change")
	}
	change := first.changes[0]
	if change.EntityID != "c1" || change.Key != "_lms_course_level" || change.EntityType != common_models.EntityTypeCourse {
		t.Errorf("change = %+v", change)
	}
}

func TestSetHandlerErrorIsWarningNotFailure(t *testing.T) {
	repo := newMemRepo()
	svc := NewMetaService(repo, staticFinder{}, zap.NewNop())
	svc.RegisterHandler(&recordingHandler{fail: true})
	healthy := &recordingHandler{}
	svc.RegisterHandler(healthy)

	result, err := svc.Set(context.Background(), "c1", "_lms_course_level", "expert")
	if err != nil {
		t.Fatalf("write must not fail on handler error: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v", result.Warnings)
	}
	// The failing handler does not stop later handlers.
	if len(healthy.changes) != 1 {
		t.Error("later handlers should still run")
	}
	// And the value is stored.
	if repo.values["c1"]["_lms_course_level"] != "expert" {
		t.Error("value should be persisted before notification")
	}
}

func TestSetUnknownEntity(t *testing.T) {
	svc := NewMetaService(newMemRepo(), staticFinder{}, zap.NewNop())

	if _, err := svc.Set(context.Background(), "missing", "_lms_course_level", "x"); err == nil {
		t.Fatal("unknown entity should fail")
	}
}
