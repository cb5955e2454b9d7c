package plan

import "errors"

// Domain errors for catalog operations.
var (
	// ErrPlanNotFound is returned for unknown plan identifiers.
	ErrPlanNotFound = errors.New("plan.plan_not_found")

	// ErrInvalidPlanConfiguration is returned when a loaded catalog fails
	// startup validation (duplicate IDs, unknown tier, malformed quotas).
	ErrInvalidPlanConfiguration = errors.New("plan.invalid_plan_configuration")

	// ErrUnknownTier is returned when a tier name cannot be parsed.
	ErrUnknownTier = errors.New("plan.unknown_tier")

	// ErrFailedToLoadCatalog wraps Source failures during load or reload.
	ErrFailedToLoadCatalog = errors.New("plan.failed_to_load_catalog")
)
