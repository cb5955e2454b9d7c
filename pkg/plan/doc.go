// Package plan provides the plan catalog: the static table mapping a plan
// identifier to its feature grants and resource quotas.
//
// Plans are immutable once loaded. The catalog loads a full snapshot from a
// Source at construction time and swaps it atomically on explicit Reload;
// there is no implicit refresh, and in-flight lookups never observe a
// half-updated table.
//
// Unknown plan identifiers return ErrPlanNotFound. The catalog never
// substitutes a default plan: silently upgrading or downgrading a tenant is
// the bug class this package exists to prevent.
package plan
