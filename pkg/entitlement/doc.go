// Package entitlement is the decision layer of the plan engine: given a
// tenant, a role, and a feature path or resource name, it answers allow or
// deny with a stable reason code, and computes remaining quota.
//
// Evaluation order for features:
//
//  1. Override rules (explicit, enumerable, auditable) — first match wins.
//  2. Subscription state — anything but active denies with
//     subscription_inactive, unless the configured inactive policy grants a
//     reduced feature set.
//  3. Plan and role-grant lookup — a missing plan or matrix entry denies
//     with unknown_plan_or_role. There is no fallback to a default plan.
//  4. Feature path resolution against the merged plan ∩ role grant tree.
//
// Every decision is pure over its inputs plus what the collaborators return.
// Collaborator failures surface as evaluation_unavailable so callers choose
// fail-open or fail-closed themselves; the engine never picks that policy.
package entitlement
