// Package decision exposes the entitlement engine over a JSON HTTP API.
//
// The API is a decision surface, not a resource store: unknown tenants,
// plans, or roles on the feature-check endpoint produce a deny with its
// reason code and status 200, because from the caller's perspective the
// question "may X do Y" always has an answer. Quota and provisioning
// endpoints, which return data rather than verdicts, use conventional
// HTTP error statuses.
//
// Authentication is out of scope; deployments front the service with
// their gateway.
package decision
