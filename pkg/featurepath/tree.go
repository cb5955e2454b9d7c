package featurepath

import (
	"fmt"
	"maps"
	"sort"
)

// Tree holds explicit decisions keyed by feature path. The zero value is not
// usable; construct trees with NewTree. A Tree is safe for concurrent reads
// once fully built; builders (Allow, Deny, Set) are not synchronized and must
// finish before the tree is shared.
type Tree struct {
	nodes map[string]Decision
}

// NewTree returns an empty grant tree. An empty tree denies everything.
func NewTree() *Tree {
	return &Tree{nodes: make(map[string]Decision)}
}

// Allow marks the given paths as explicitly granted and returns the tree
// for chaining. Malformed paths are skipped; use Set to surface errors.
func (t *Tree) Allow(paths ...string) *Tree {
	for _, p := range paths {
		_ = t.Set(p, DecisionAllow)
	}
	return t
}

// Deny marks the given paths as explicitly denied and returns the tree
// for chaining. Malformed paths are skipped; use Set to surface errors.
func (t *Tree) Deny(paths ...string) *Tree {
	for _, p := range paths {
		_ = t.Set(p, DecisionDeny)
	}
	return t
}

// Set attaches an explicit decision to a path. Setting DecisionInherit
// removes any previous decision. Returns ErrConflictingDecision when the
// exact path already carries the opposite verdict.
func (t *Tree) Set(path string, d Decision) error {
	path = Normalize(path)
	if err := Validate(path); err != nil {
		return err
	}

	if d == DecisionInherit {
		delete(t.nodes, path)
		return nil
	}

	if prev, ok := t.nodes[path]; ok && prev != d {
		return fmt.Errorf("%w: %q is both %s and %s", ErrConflictingDecision, path, prev, d)
	}

	t.nodes[path] = d
	return nil
}

// Decision returns the explicit decision attached to the exact path, or
// DecisionInherit when the node has none.
func (t *Tree) Decision(path string) Decision {
	return t.nodes[Normalize(path)]
}

// Walk resolves a path against the tree and reports the winning decision
// together with the node that produced it. When no node on the walk carries
// an explicit decision, Walk returns (DecisionInherit, "").
func (t *Tree) Walk(path string) (Decision, string) {
	path = Normalize(path)
	if path == "" {
		return DecisionInherit, ""
	}

	for _, candidate := range candidates(path) {
		if d, ok := t.nodes[candidate]; ok && d != DecisionInherit {
			return d, candidate
		}
	}
	return DecisionInherit, ""
}

// Resolve reports whether a path is granted. Paths with no explicit decision
// anywhere on their walk are denied.
func (t *Tree) Resolve(path string) bool {
	d, _ := t.Walk(path)
	return d == DecisionAllow
}

// Len returns the number of explicit decisions in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Paths returns every path carrying an explicit decision, sorted.
func (t *Tree) Paths() []string {
	out := make([]string, 0, len(t.nodes))
	for p := range t.nodes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the tree.
func (t *Tree) Clone() *Tree {
	return &Tree{nodes: maps.Clone(t.nodes)}
}

// Merge combines a plan grant tree with a role grant tree into the effective
// tree for that (plan, role) pair. A path is granted when the plan grants it
// and the role does not explicitly deny it; a role grant can never exceed
// the plan (the plan gates everything), and an explicit role deny always
// overrides a plan grant. Plan-level features no role tree mentions, such as
// printing, flow through untouched.
//
// The merged tree contains a decision for every node path present in either
// input, so resolving an arbitrary path against the result is equivalent to
// merging the two resolutions.
func Merge(plan, role *Tree) *Tree {
	merged := NewTree()
	if plan == nil || role == nil {
		return merged
	}

	decide := func(path string) {
		if _, ok := merged.nodes[path]; ok {
			return
		}

		roleDec, _ := role.Walk(path)
		planDec, _ := plan.Walk(path)

		if planDec == DecisionAllow && roleDec != DecisionDeny {
			merged.nodes[path] = DecisionAllow
			return
		}
		merged.nodes[path] = DecisionDeny
	}

	for path := range plan.nodes {
		decide(path)
	}
	for path := range role.nodes {
		decide(path)
	}
	return merged
}
