package rolematrix

import (
	"context"
	"slices"
	"sync"
)

// inMemSource is a Source backed by a static grant slice.
type inMemSource struct {
	mu     sync.RWMutex
	grants []RoleGrant
}

// NewInMemSource returns a Source serving a deep copy of the given grants.
func NewInMemSource(grants []RoleGrant) Source {
	return &inMemSource{grants: cloneGrants(grants)}
}

// Load returns a fresh copy of the grants.
func (s *inMemSource) Load(ctx context.Context) ([]RoleGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneGrants(s.grants), nil
}

func cloneGrants(grants []RoleGrant) []RoleGrant {
	out := make([]RoleGrant, len(grants))
	for i, g := range grants {
		out[i] = RoleGrant{
			PlanID:     g.PlanID,
			Role:       g.Role,
			Allowed:    slices.Clone(g.Allowed),
			Denied:     slices.Clone(g.Denied),
			Provisions: slices.Clone(g.Provisions),
		}
	}
	return out
}
