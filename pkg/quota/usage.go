package quota

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// UsageSource supplies the current usage counters for a tenant. Counters are
// maintained by operational code outside this engine; this interface only
// reads snapshots.
type UsageSource interface {
	// LoadUsage returns the current counter values for a tenant. A tenant
	// with no recorded usage returns an empty map, not an error.
	LoadUsage(ctx context.Context, tenantID uuid.UUID) (map[Resource]int64, error)
}

// InMemUsageSource is a thread-safe UsageSource backed by a map, intended
// for tests and single-process deployments. Callers drive counter values
// directly via Set and Add.
type InMemUsageSource struct {
	mu       sync.RWMutex
	counters map[uuid.UUID]map[Resource]int64
}

// NewInMemUsageSource returns an empty in-memory UsageSource.
func NewInMemUsageSource() *InMemUsageSource {
	return &InMemUsageSource{
		counters: make(map[uuid.UUID]map[Resource]int64),
	}
}

// Set replaces the counter value for a tenant resource.
func (s *InMemUsageSource) Set(tenantID uuid.UUID, res Resource, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counters[tenantID] == nil {
		s.counters[tenantID] = make(map[Resource]int64)
	}
	s.counters[tenantID][res] = value
}

// Add increments the counter value for a tenant resource by delta.
func (s *InMemUsageSource) Add(tenantID uuid.UUID, res Resource, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counters[tenantID] == nil {
		s.counters[tenantID] = make(map[Resource]int64)
	}
	s.counters[tenantID][res] += delta
}

// LoadUsage returns a copy of the tenant's counters.
func (s *InMemUsageSource) LoadUsage(ctx context.Context, tenantID uuid.UUID) (map[Resource]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counters, ok := s.counters[tenantID]
	if !ok {
		return map[Resource]int64{}, nil
	}
	return maps.Clone(counters), nil
}
