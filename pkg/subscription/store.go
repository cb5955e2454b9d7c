package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store defines read access to subscription records. TenantID is the key:
// each tenant has at most one current subscription.
type Store interface {
	// Get retrieves the subscription for a tenant.
	// Returns ErrSubscriptionNotFound when no record exists.
	Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)
}

// InMemStore is a thread-safe Store backed by a map, for tests and local
// development. Put mimics what the billing collaborator does in production.
type InMemStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Subscription
}

// NewInMemStore returns an empty in-memory store.
func NewInMemStore() *InMemStore {
	return &InMemStore{subs: make(map[uuid.UUID]Subscription)}
}

// Put creates or replaces the subscription for its tenant.
func (s *InMemStore) Put(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.TenantID] = sub
}

// Delete removes the subscription for a tenant.
func (s *InMemStore) Delete(tenantID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, tenantID)
}

// Get retrieves the subscription for a tenant.
func (s *InMemStore) Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[tenantID]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	cp := sub
	return &cp, nil
}
