package featurepath

import "errors"

// Domain errors for grant tree construction and validation.
var (
	// ErrEmptyPath is returned when a feature path is empty or whitespace.
	ErrEmptyPath = errors.New("featurepath.empty_path")

	// ErrInvalidPath is returned when a feature path contains empty segments
	// or a wildcard anywhere but the final segment.
	ErrInvalidPath = errors.New("featurepath.invalid_path")

	// ErrConflictingDecision is returned when the same exact path carries
	// both an allow and a deny decision.
	ErrConflictingDecision = errors.New("featurepath.conflicting_decision")
)
