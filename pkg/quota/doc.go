// Package quota turns a resource ceiling and a usage snapshot into a
// LimitResult, and derives threshold alerts from those results.
//
// The Unlimited sentinel (-1) is handled in a single code path: an unlimited
// resource is never exceeded, reports 0% usage, and Unlimited remaining.
// Reaching a limit exactly counts as exceeded, so the check blocks the
// action that would push usage over the ceiling.
//
// Usage counters are snapshots supplied by a UsageSource; they may be stale
// by the time the caller acts on them. The check is best-effort, not a
// reservation: hard guarantees belong to the persistence layer via atomic
// conditional updates.
package quota
