package rolematrix

import "errors"

// Domain errors for matrix operations.
var (
	// ErrRoleGrantNotFound is returned when no entry exists for a (plan, role) pair.
	ErrRoleGrantNotFound = errors.New("rolematrix.role_grant_not_found")

	// ErrInvalidMatrixConfiguration is returned when a loaded matrix fails
	// startup validation (duplicate pairs, overlapping allow/deny lists,
	// provisions referencing roles without an entry).
	ErrInvalidMatrixConfiguration = errors.New("rolematrix.invalid_matrix_configuration")

	// ErrMissingPair is returned by coverage validation when a required
	// (plan, role) pair has no entry.
	ErrMissingPair = errors.New("rolematrix.missing_pair")

	// ErrFailedToLoadMatrix wraps Source failures during load or reload.
	ErrFailedToLoadMatrix = errors.New("rolematrix.failed_to_load_matrix")
)
