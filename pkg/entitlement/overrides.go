package entitlement

import "github.com/google/uuid"

// Rule is one explicit exception consulted before the generic plan/role
// matrix. Rules are static and enumerable: the whole exception surface of a
// deployment is this list, nothing else. Every rule carries a human-readable
// justification retained in the verdict for audit logging.
type Rule struct {
	// Name identifies the rule in decisions and logs.
	Name string

	// Justification explains why the exception exists. Required.
	Justification string

	// Match reports whether the rule applies to the given subject.
	Match func(tenantID uuid.UUID, role string) bool

	// AllowAllFeatures grants every feature path when the rule matches.
	AllowAllFeatures bool

	// BypassQuota treats every resource as unlimited when the rule matches.
	BypassQuota bool
}

// OverrideResolver evaluates the rule list in declaration order; the first
// matching rule with the relevant effect wins.
type OverrideResolver struct {
	rules []Rule
}

// NewOverrideResolver builds a resolver from an explicit rule list. Rules
// without a Match predicate are ignored.
func NewOverrideResolver(rules ...Rule) *OverrideResolver {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Match != nil {
			kept = append(kept, r)
		}
	}
	return &OverrideResolver{rules: kept}
}

// Rules returns the configured rule list for audit endpoints and tests.
func (o *OverrideResolver) Rules() []Rule {
	out := make([]Rule, len(o.rules))
	copy(out, o.rules)
	return out
}

// ResolveFeature returns the first matching rule that forces feature access.
func (o *OverrideResolver) ResolveFeature(tenantID uuid.UUID, role string) (Rule, bool) {
	if o == nil {
		return Rule{}, false
	}
	for _, r := range o.rules {
		if r.AllowAllFeatures && r.Match(tenantID, role) {
			return r, true
		}
	}
	return Rule{}, false
}

// ResolveQuota returns the first matching rule that bypasses quota.
func (o *OverrideResolver) ResolveQuota(tenantID uuid.UUID, role string) (Rule, bool) {
	if o == nil {
		return Rule{}, false
	}
	for _, r := range o.rules {
		if r.BypassQuota && r.Match(tenantID, role) {
			return r, true
		}
	}
	return Rule{}, false
}

// RoleQuotaBypass builds the conventional "system roles are never blocked by
// quota" rule.
func RoleQuotaBypass(justification string, roles ...string) Rule {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Rule{
		Name:          "role_quota_bypass",
		Justification: justification,
		Match: func(_ uuid.UUID, role string) bool {
			_, ok := set[role]
			return ok
		},
		BypassQuota: true,
	}
}

// TenantFullAccess builds a rule granting one designated tenant top-tier
// entitlement and unlimited quota regardless of its actual subscription.
// Whether such a rule should exist is a product decision; keeping it here
// makes the exception visible and auditable instead of scattered.
func TenantFullAccess(tenantID uuid.UUID, justification string) Rule {
	return Rule{
		Name:          "tenant_full_access",
		Justification: justification,
		Match: func(id uuid.UUID, _ string) bool {
			return id == tenantID
		},
		AllowAllFeatures: true,
		BypassQuota:      true,
	}
}
