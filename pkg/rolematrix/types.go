package rolematrix

import (
	"fmt"
	"slices"

	"github.com/restokit/entitlement/pkg/featurepath"
)

// User roles of the POS suite.
const (
	RoleAdmin      = "admin"
	RoleCajero     = "cajero"
	RoleCocinero   = "cocinero"
	RoleMesero     = "mesero"
	RoleGerente    = "gerente"
	RoleSuperAdmin = "super_admin"
)

// RoleGrant is one matrix entry: the feature restrictions a role has under a
// plan, plus the roles it may provision. Allowed and Denied must not overlap
// on the same exact path; when a base path and a sub-path both appear, the
// more specific path wins at resolution time.
type RoleGrant struct {
	PlanID     string
	Role       string
	Allowed    []string
	Denied     []string
	Provisions []string // roles this role may create
}

// CanProvision reports whether the grant allows creating a user with the
// target role.
func (g RoleGrant) CanProvision(targetRole string) bool {
	return slices.Contains(g.Provisions, targetRole)
}

// Tree builds the grant tree from the allow/deny lists. It returns
// ErrInvalidMatrixConfiguration when the lists overlap on the same exact
// path or contain malformed paths.
func (g RoleGrant) Tree() (*featurepath.Tree, error) {
	tree := featurepath.NewTree()
	for _, path := range g.Allowed {
		if err := tree.Set(path, featurepath.DecisionAllow); err != nil {
			return nil, fmt.Errorf("%w: plan %q role %q: %w",
				ErrInvalidMatrixConfiguration, g.PlanID, g.Role, err)
		}
	}
	for _, path := range g.Denied {
		if err := tree.Set(path, featurepath.DecisionDeny); err != nil {
			return nil, fmt.Errorf("%w: plan %q role %q: %w",
				ErrInvalidMatrixConfiguration, g.PlanID, g.Role, err)
		}
	}
	return tree, nil
}

// Pair identifies one (plan, role) combination for coverage validation.
type Pair struct {
	PlanID string
	Role   string
}
