// Package rolematrix holds the per-plan, per-role feature restrictions: for
// each (plan, role) pair, an explicit allow/deny grant tree and the set of
// roles that role may provision.
//
// The matrix is data, not code. Every (plan, role) pair that can occur in a
// live tenant must have an entry; a missing pair is a configuration error
// surfaced by startup validation, never a runtime guess. Like the plan
// catalog, the matrix loads full snapshots and swaps them atomically on
// explicit Reload.
package rolematrix
