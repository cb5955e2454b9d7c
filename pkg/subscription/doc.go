// Package subscription models the read-only subscription input of the
// entitlement engine: which plan a tenant is on and whether that
// subscription is currently active.
//
// Subscriptions are mutated only by the external billing collaborator; this
// package exposes lookup stores and lifecycle helpers, nothing that writes.
package subscription
