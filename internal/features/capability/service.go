package capability

import (
	"context"
	"fmt"
	stdsync "sync"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/features/audit"
)

type CapabilityService interface {
	IsEnabled(ctx context.Context, name string) bool
	SetEnabled(ctx context.Context, name string, enabled bool) error
	List(ctx context.Context) ([]Capability, error)
}

type CapabilityServiceImpl struct {
	Repo         CapabilityRepository
	AuditService audit.AuditService

	mu     stdsync.RWMutex
	cache  map[string]bool
	loaded bool
}

func NewCapabilityService(repo CapabilityRepository, auditService audit.AuditService) CapabilityService {
	return &CapabilityServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

// IsEnabled is on the hot path of every sync decision; lookups hit an
// in-memory cache loaded once and invalidated on toggle. Unknown flags
// are off.
func (s *CapabilityServiceImpl) IsEnabled(ctx context.Context, name string) bool {
	s.mu.RLock()
	if s.loaded {
		enabled := s.cache[name]
		s.mu.RUnlock()
		return enabled
	}
	s.mu.RUnlock()

	s.reload(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[name]
}

func (s *CapabilityServiceImpl) SetEnabled(ctx context.Context, name string, enabled bool) error {
	known := false
	for _, c := range KnownCapabilities {
		if c == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown capability: %s", name)
	}

	old := s.IsEnabled(ctx, name)

	if err := s.Repo.Upsert(ctx, name, enabled); err != nil {
		return err
	}

	s.mu.Lock()
	if s.cache == nil {
		s.cache = map[string]bool{}
	}
	s.cache[name] = enabled
	s.mu.Unlock()

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCapability, "capability", name, map[string]common_models.Change{
		"enabled": {Old: old, New: enabled},
	})
	return nil
}

func (s *CapabilityServiceImpl) List(ctx context.Context) ([]Capability, error) {
	stored, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	byName := map[string]Capability{}
	for _, c := range stored {
		byName[c.Name] = c
	}

	// Known flags always appear, defaulting to disabled
	out := make([]Capability, 0, len(KnownCapabilities))
	for _, name := range KnownCapabilities {
		if c, ok := byName[name]; ok {
			out = append(out, c)
		} else {
			out = append(out, Capability{Name: name, Enabled: false})
		}
	}
	return out, nil
}

func (s *CapabilityServiceImpl) reload(ctx context.Context) {
	stored, err := s.Repo.List(ctx)
	if err != nil {
		// Leave the cache unloaded; the next check retries
		return
	}

	cache := map[string]bool{}
	for _, c := range stored {
		cache[c.Name] = c.Enabled
	}

	s.mu.Lock()
	s.cache = cache
	s.loaded = true
	s.mu.Unlock()
}
