package capability

import (
	"context"
	"testing"

	common_models "go-lms-bridge/internal/common/models"
)

type memCapRepo struct {
	stored    map[string]bool
	listCalls int
}

func (r *memCapRepo) List(_ context.Context) ([]Capability, error) {
	r.listCalls++
	var out []Capability
	for name, enabled := range r.stored {
		out = append(out, Capability{Name: name, Enabled: enabled})
	}
	return out, nil
}

func (r *memCapRepo) Upsert(_ context.Context, name string, enabled bool) error {
	r.stored[name] = enabled
	return nil
}

func (r *memCapRepo) EnsureIndexes(_ context.Context) error { return nil }

type noopAudit struct{}

func (noopAudit) LogChange(_ context.Context, _ common_models.AuditAction, _ string, _ string, _ map[string]common_models.Change) error {
	return nil
}

func (noopAudit) ListLogs(_ context.Context, _ map[string]interface{}, _, _ int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func TestIsEnabledUsesCache(t *testing.T) {
	repo := &memCapRepo{stored: map[string]bool{CapabilityPreview: true}}
	svc := NewCapabilityService(repo, noopAudit{})
	ctx := context.Background()

	if !svc.IsEnabled(ctx, CapabilityPreview) {
		t.Fatal("stored flag should be on")
	}
	svc.IsEnabled(ctx, CapabilityPreview)
	svc.IsEnabled(ctx, CapabilityContentDrip)

	if repo.listCalls != 1 {
		t.Errorf("cache miss count = %d, want 1 load", repo.listCalls)
	}
}

func TestIsEnabledUnknownFlagIsOff(t *testing.T) {
	repo := &memCapRepo{stored: map[string]bool{}}
	svc := NewCapabilityService(repo, noopAudit{})

	if svc.IsEnabled(context.Background(), "never_heard_of_it") {
		t.Error("unknown flag must read as disabled")
	}
}

func TestSetEnabledUpdatesCache(t *testing.T) {
	repo := &memCapRepo{stored: map[string]bool{}}
	svc := NewCapabilityService(repo, noopAudit{})
	ctx := context.Background()

	if svc.IsEnabled(ctx, CapabilityPreview) {
		t.Fatal("preview starts disabled")
	}

	if err := svc.SetEnabled(ctx, CapabilityPreview, true); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if !svc.IsEnabled(ctx, CapabilityPreview) {
		t.Error("toggle should be visible without a reload")
	}
}

func TestSetEnabledRejectsUnknownFlag(t *testing.T) {
	svc := NewCapabilityService(&memCapRepo{stored: map[string]bool{}}, noopAudit{})

	if err := svc.SetEnabled(context.Background(), "bogus", true); err == nil {
		t.Fatal("unknown flag should be rejected")
	}
}

func TestListAlwaysShowsKnownFlags(t *testing.T) {
	repo := &memCapRepo{stored: map[string]bool{CapabilityZoom: true}}
	svc := NewCapabilityService(repo, noopAudit{})

	out, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != len(KnownCapabilities) {
		t.Fatalf("got %d flags, want %d", len(out), len(KnownCapabilities))
	}

	byName := map[string]bool{}
	for _, c := range out {
		byName[c.Name] = c.Enabled
	}
	if !byName[CapabilityZoom] {
		t.Error("stored flag lost")
	}
	if byName[CapabilityWooCommerce] {
		t.Error("unstored flag should default to disabled")
	}
}
