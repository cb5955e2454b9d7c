package subscription

import "errors"

// Domain errors for subscription lookups.
var (
	// ErrSubscriptionNotFound is returned when a tenant has no subscription record.
	ErrSubscriptionNotFound = errors.New("subscription.subscription_not_found")

	// ErrFailedToLoadSubscription wraps transport or driver failures.
	ErrFailedToLoadSubscription = errors.New("subscription.failed_to_load_subscription")
)
