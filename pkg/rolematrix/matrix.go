package rolematrix

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/restokit/entitlement/pkg/featurepath"
)

// Source defines how role grants are loaded into the matrix.
type Source interface {
	Load(ctx context.Context) ([]RoleGrant, error)
}

// Matrix is the read-mostly (plan, role) restriction table. Lookups run
// against an immutable snapshot; Reload swaps snapshots atomically.
type Matrix struct {
	source   Source
	snapshot atomic.Pointer[matrixSnapshot]
}

type matrixSnapshot struct {
	entries map[Pair]entry
	roles   map[string][]string // planID -> sorted role names
}

type entry struct {
	grant RoleGrant
	tree  *featurepath.Tree
}

// NewMatrix loads and validates the initial snapshot. Matrix configuration
// errors fail construction; absence of an entry is never resolved at runtime.
func NewMatrix(ctx context.Context, source Source) (*Matrix, error) {
	m := &Matrix{source: source}
	if err := m.Reload(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload loads a fresh snapshot, validates it, and swaps it in atomically.
// On failure the previous snapshot stays active.
func (m *Matrix) Reload(ctx context.Context) error {
	grants, err := m.source.Load(ctx)
	if err != nil {
		return errors.Join(ErrFailedToLoadMatrix, err)
	}

	snap, err := buildMatrixSnapshot(grants)
	if err != nil {
		return err
	}

	m.snapshot.Store(snap)
	return nil
}

// GetRoleGrant returns the entry for a (plan, role) pair, or
// ErrRoleGrantNotFound. There is no fallback entry.
func (m *Matrix) GetRoleGrant(planID, role string) (RoleGrant, error) {
	snap := m.snapshot.Load()
	e, ok := snap.entries[Pair{PlanID: planID, Role: role}]
	if !ok {
		return RoleGrant{}, fmt.Errorf("%w: plan %q role %q", ErrRoleGrantNotFound, planID, role)
	}
	return e.grant, nil
}

// GrantTree returns the precomputed grant tree for a (plan, role) pair.
func (m *Matrix) GrantTree(planID, role string) (*featurepath.Tree, error) {
	snap := m.snapshot.Load()
	e, ok := snap.entries[Pair{PlanID: planID, Role: role}]
	if !ok {
		return nil, fmt.Errorf("%w: plan %q role %q", ErrRoleGrantNotFound, planID, role)
	}
	return e.tree, nil
}

// Roles returns the sorted role names that have an entry under a plan.
func (m *Matrix) Roles(planID string) []string {
	snap := m.snapshot.Load()
	roles := snap.roles[planID]
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// ValidateCoverage checks that every required (plan, role) pair has an
// entry. Callers enumerate the pairs that can occur in live tenants and run
// this at startup.
func (m *Matrix) ValidateCoverage(required []Pair) error {
	snap := m.snapshot.Load()
	for _, pair := range required {
		if _, ok := snap.entries[pair]; !ok {
			return fmt.Errorf("%w: plan %q role %q", ErrMissingPair, pair.PlanID, pair.Role)
		}
	}
	return nil
}

func buildMatrixSnapshot(grants []RoleGrant) (*matrixSnapshot, error) {
	entries := make(map[Pair]entry, len(grants))
	roles := make(map[string][]string)

	for _, g := range grants {
		if g.PlanID == "" || g.Role == "" {
			return nil, fmt.Errorf("%w: entry with empty plan or role", ErrInvalidMatrixConfiguration)
		}

		pair := Pair{PlanID: g.PlanID, Role: g.Role}
		if _, dup := entries[pair]; dup {
			return nil, fmt.Errorf("%w: duplicate entry for plan %q role %q",
				ErrInvalidMatrixConfiguration, g.PlanID, g.Role)
		}

		tree, err := g.Tree()
		if err != nil {
			return nil, err
		}

		entries[pair] = entry{grant: g, tree: tree}
		roles[g.PlanID] = append(roles[g.PlanID], g.Role)
	}

	// Provisions must reference roles that exist under the same plan:
	// a role cannot create users the matrix has no restrictions for.
	for pair, e := range entries {
		for _, target := range e.grant.Provisions {
			if _, ok := entries[Pair{PlanID: pair.PlanID, Role: target}]; !ok {
				return nil, fmt.Errorf("%w: plan %q role %q provisions unknown role %q",
					ErrInvalidMatrixConfiguration, pair.PlanID, pair.Role, target)
			}
		}
	}

	for planID := range roles {
		sort.Strings(roles[planID])
	}

	return &matrixSnapshot{entries: entries, roles: roles}, nil
}
