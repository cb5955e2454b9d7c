package featurepath

import (
	"fmt"
	"strings"
)

const (
	// Delimiter separates path segments (e.g., "egresos.avanzado").
	Delimiter = "."

	// Wildcard matches every sub-path of its parent when used as the final
	// segment (e.g., "dashboard.*").
	Wildcard = "*"
)

// Decision is the explicit verdict attached to a tree node.
type Decision uint8

const (
	// DecisionInherit means the node defers to its nearest decided ancestor.
	DecisionInherit Decision = iota

	// DecisionAllow grants the path and, absent deeper decisions, its sub-paths.
	DecisionAllow

	// DecisionDeny denies the path and, absent deeper decisions, its sub-paths.
	DecisionDeny
)

// String returns the decision name for logging and test output.
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	default:
		return "inherit"
	}
}

// Validate checks that a feature path is well-formed: non-empty, no empty
// segments, and a wildcard only as the final segment.
func Validate(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return ErrEmptyPath
	}

	segments := strings.Split(path, Delimiter)
	for i, seg := range segments {
		if seg == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
		if seg == Wildcard && i != len(segments)-1 {
			return fmt.Errorf("%w: %q has a non-terminal wildcard", ErrInvalidPath, path)
		}
	}
	return nil
}

// Normalize trims surrounding whitespace from a path. Paths are otherwise
// matched verbatim; no case folding is applied.
func Normalize(path string) string {
	return strings.TrimSpace(path)
}

// candidates returns the lookup order for a path, most specific first.
// For "a.b.c" the order is: a.b.c, a.b.*, a.b, a.*, a, *.
func candidates(path string) []string {
	segments := strings.Split(path, Delimiter)
	out := make([]string, 0, 2*len(segments))

	for i := len(segments); i > 0; i-- {
		prefix := strings.Join(segments[:i], Delimiter)
		out = append(out, prefix)

		if i == 1 {
			out = append(out, Wildcard)
			continue
		}
		out = append(out, strings.Join(segments[:i-1], Delimiter)+Delimiter+Wildcard)
	}
	return out
}
