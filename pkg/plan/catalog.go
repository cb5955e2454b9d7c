package plan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/restokit/entitlement/pkg/quota"
)

// Source defines how plans are loaded into the catalog. A Source returns a
// full batch; partial loads are not supported.
type Source interface {
	Load(ctx context.Context) ([]Plan, error)
}

// Catalog holds an immutable snapshot of all plans and supports explicit
// reload with an atomic swap, so concurrent readers never see a
// half-updated table.
type Catalog struct {
	source   Source
	snapshot atomic.Pointer[catalogSnapshot]
}

type catalogSnapshot struct {
	byID   map[string]Plan
	byTier []Plan // ascending tier order
}

// NewCatalog loads and validates the initial snapshot. A catalog that fails
// validation is not returned: configuration errors surface at startup, not
// as runtime guesses.
func NewCatalog(ctx context.Context, source Source) (*Catalog, error) {
	c := &Catalog{source: source}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload loads a fresh snapshot from the source, validates it, and swaps it
// in atomically. On failure the previous snapshot stays active.
func (c *Catalog) Reload(ctx context.Context) error {
	plans, err := c.source.Load(ctx)
	if err != nil {
		return errors.Join(ErrFailedToLoadCatalog, err)
	}

	snap, err := buildSnapshot(plans)
	if err != nil {
		return err
	}

	c.snapshot.Store(snap)
	return nil
}

// GetPlan returns the plan for the given identifier, or ErrPlanNotFound.
// There is no default plan fallback.
func (c *Catalog) GetPlan(planID string) (Plan, error) {
	snap := c.snapshot.Load()
	p, ok := snap.byID[planID]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrPlanNotFound, planID)
	}
	return p, nil
}

// Plans returns all plans in ascending tier order.
func (c *Catalog) Plans() []Plan {
	snap := c.snapshot.Load()
	out := make([]Plan, len(snap.byTier))
	copy(out, snap.byTier)
	return out
}

// RequiredPlanFor returns the lowest-tier plan whose grant tree resolves the
// given feature path, for "upgrade to X" messaging on denials.
func (c *Catalog) RequiredPlanFor(path string) (Plan, bool) {
	snap := c.snapshot.Load()
	for _, p := range snap.byTier {
		if p.Grants != nil && p.Grants.Resolve(path) {
			return p, true
		}
	}
	return Plan{}, false
}

func buildSnapshot(plans []Plan) (*catalogSnapshot, error) {
	byID := make(map[string]Plan, len(plans))
	byTier := make([]Plan, 0, len(plans))

	for _, p := range plans {
		if err := validatePlan(p); err != nil {
			return nil, err
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate plan id %q", ErrInvalidPlanConfiguration, p.ID)
		}

		cp := p.clone()
		byID[cp.ID] = cp
		byTier = append(byTier, cp)
	}

	sort.Slice(byTier, func(i, j int) bool {
		return byTier[i].Tier < byTier[j].Tier
	})

	return &catalogSnapshot{byID: byID, byTier: byTier}, nil
}

func validatePlan(p Plan) error {
	if p.ID == "" {
		return fmt.Errorf("%w: plan with empty id", ErrInvalidPlanConfiguration)
	}
	if p.Tier < TierBasic || p.Tier > TierEnterprise {
		return fmt.Errorf("%w: plan %q has invalid tier %d", ErrInvalidPlanConfiguration, p.ID, p.Tier)
	}
	if p.Grants == nil {
		return fmt.Errorf("%w: plan %q has no grant tree", ErrInvalidPlanConfiguration, p.ID)
	}
	for res, max := range p.Quotas {
		if max < quota.Unlimited {
			return fmt.Errorf("%w: plan %q quota %q is negative and not the unlimited sentinel",
				ErrInvalidPlanConfiguration, p.ID, res)
		}
	}
	return nil
}
