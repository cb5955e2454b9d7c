package plan

import (
	"context"
	"sync"
)

// inMemSource is a Source backed by a static plan slice, for tests and
// single-binary deployments with compiled-in catalogs.
type inMemSource struct {
	mu    sync.RWMutex
	plans []Plan
}

// NewInMemSource returns a Source serving a deep copy of the given plans.
func NewInMemSource(plans []Plan) Source {
	cp := make([]Plan, len(plans))
	for i, p := range plans {
		cp[i] = p.clone()
	}
	return &inMemSource{plans: cp}
}

// Load returns a fresh copy of the plans.
func (s *inMemSource) Load(ctx context.Context) ([]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Plan, len(s.plans))
	for i, p := range s.plans {
		out[i] = p.clone()
	}
	return out, nil
}
