package plan

import (
	"fmt"
	"maps"
	"strings"

	"github.com/restokit/entitlement/pkg/featurepath"
	"github.com/restokit/entitlement/pkg/quota"
)

// Tier is the ordered rank among plans. Higher tiers are supersets of lower
// tiers' feature grants unless an explicit denial overrides. The tier is
// resolved once at load time and never re-derived from free-text plan names.
type Tier int

const (
	TierBasic Tier = iota + 1
	TierProfessional
	TierAdvanced
	TierEnterprise
)

// String returns the canonical tier name.
func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierProfessional:
		return "professional"
	case TierAdvanced:
		return "advanced"
	case TierEnterprise:
		return "enterprise"
	default:
		return "unknown"
	}
}

// ParseTier resolves a tier name to its rank. Matching is case-insensitive
// and accepts the Spanish plan names used by the POS suite.
func ParseTier(name string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic", "basico", "básico":
		return TierBasic, nil
	case "professional", "profesional":
		return TierProfessional, nil
	case "advanced", "avanzado":
		return TierAdvanced, nil
	case "enterprise":
		return TierEnterprise, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
}

// Plan describes a subscription plan: its feature grant tree and its quota
// ceilings. Plans are immutable once loaded into a catalog.
type Plan struct {
	ID          string
	Name        string
	Description string
	Tier        Tier
	Grants      *featurepath.Tree
	Quotas      map[quota.Resource]int64 // quota.Unlimited for no ceiling
}

// HasQuota reports whether the plan meters the given resource.
func (p Plan) HasQuota(res quota.Resource) bool {
	_, ok := p.Quotas[res]
	return ok
}

// LimitFor returns the LimitDef for a metered resource.
func (p Plan) LimitFor(res quota.Resource) (quota.LimitDef, bool) {
	max, ok := p.Quotas[res]
	if !ok {
		return quota.LimitDef{}, false
	}
	return quota.LimitDef{Resource: res, Max: max}, true
}

// clone returns a deep copy so catalog snapshots never alias source data.
func (p Plan) clone() Plan {
	cp := p
	cp.Quotas = maps.Clone(p.Quotas)
	if p.Grants != nil {
		cp.Grants = p.Grants.Clone()
	}
	return cp
}
