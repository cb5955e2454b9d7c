// Package redis provides Redis connectivity for the usage counter store:
// client construction with startup retries and a readiness probe.
package redis
