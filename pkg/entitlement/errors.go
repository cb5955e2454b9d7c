package entitlement

import "errors"

// Typed results for quota and provisioning lookups. These are reported to
// the caller as values, never thrown through as raw lookup failures, and
// never coerced into a default plan.
var (
	// ErrUnknownTenant is returned when no subscription record exists for the tenant.
	ErrUnknownTenant = errors.New("entitlement.unknown_tenant")

	// ErrUnknownPlan is returned when the subscription references a plan the catalog does not have.
	ErrUnknownPlan = errors.New("entitlement.unknown_plan")

	// ErrUnknownRole is returned when the matrix has no entry for the (plan, role) pair.
	ErrUnknownRole = errors.New("entitlement.unknown_role")

	// ErrSubscriptionInactive is returned when the subscription state is not active.
	ErrSubscriptionInactive = errors.New("entitlement.subscription_inactive")

	// ErrResourceNotMetered is returned for a quota lookup on a resource the plan does not meter.
	ErrResourceNotMetered = errors.New("entitlement.resource_not_metered")

	// ErrNotADowngrade is returned when the target plan's tier is not below
	// the tenant's current tier.
	ErrNotADowngrade = errors.New("entitlement.not_a_downgrade")

	// ErrEvaluationUnavailable wraps collaborator failures (store errors,
	// timeouts). Callers decide fail-open or fail-closed.
	ErrEvaluationUnavailable = errors.New("entitlement.evaluation_unavailable")
)
