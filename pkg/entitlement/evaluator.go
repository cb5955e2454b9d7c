package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/restokit/entitlement/pkg/featurepath"
	"github.com/restokit/entitlement/pkg/plan"
	"github.com/restokit/entitlement/pkg/quota"
	"github.com/restokit/entitlement/pkg/rolematrix"
	"github.com/restokit/entitlement/pkg/subscription"
)

// InactivePolicy decides what a non-active subscription is still entitled
// to. The default denies everything; deployments that want a read-only
// grace mode configure a reduced grant set. This is the one place the
// policy lives.
type InactivePolicy struct {
	grants *featurepath.Tree
}

// DenyAllWhenInactive denies every feature for non-active subscriptions.
func DenyAllWhenInactive() InactivePolicy {
	return InactivePolicy{}
}

// GrantSetWhenInactive still grants the listed feature paths while the
// subscription is not active (e.g. a read-only dashboard during dunning).
func GrantSetWhenInactive(paths ...string) InactivePolicy {
	return InactivePolicy{grants: featurepath.NewTree().Allow(paths...)}
}

func (p InactivePolicy) allows(path string) bool {
	return p.grants != nil && p.grants.Resolve(path)
}

// Evaluator is the public decision surface: route guards and UI gates call
// it and never touch the catalog or matrix directly.
type Evaluator struct {
	catalog   *plan.Catalog
	matrix    *rolematrix.Matrix
	subs      subscription.Store
	usage     quota.UsageSource
	overrides *OverrideResolver
	inactive  InactivePolicy
	log       *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOverrides installs the deployment's exception rule list.
func WithOverrides(resolver *OverrideResolver) Option {
	return func(e *Evaluator) { e.overrides = resolver }
}

// WithInactivePolicy replaces the default deny-all policy for non-active
// subscriptions.
func WithInactivePolicy(policy InactivePolicy) Option {
	return func(e *Evaluator) { e.inactive = policy }
}

// WithLogger sets the structured logger used for audit lines on override
// verdicts and collaborator failures.
func WithLogger(log *slog.Logger) Option {
	return func(e *Evaluator) { e.log = log }
}

// New assembles an Evaluator over its collaborators. All arguments are
// required; options cover policy and audit concerns.
func New(catalog *plan.Catalog, matrix *rolematrix.Matrix, subs subscription.Store, usage quota.UsageSource, opts ...Option) (*Evaluator, error) {
	if catalog == nil || matrix == nil || subs == nil || usage == nil {
		return nil, errors.New("entitlement: all collaborators are required")
	}

	e := &Evaluator{
		catalog:  catalog,
		matrix:   matrix,
		subs:     subs,
		usage:    usage,
		inactive: DenyAllWhenInactive(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// HasFeature decides whether a tenant's user with the given role may use a
// feature path. The decision carries the reason code that produced it.
func (e *Evaluator) HasFeature(ctx context.Context, tenantID uuid.UUID, role, path string) Decision {
	path = featurepath.Normalize(path)
	if err := featurepath.Validate(path); err != nil {
		return deny(ReasonInvalidPath)
	}

	if rule, ok := e.overrides.ResolveFeature(tenantID, role); ok {
		e.log.LogAttrs(ctx, slog.LevelInfo, "override verdict",
			slog.String("rule", rule.Name),
			slog.String("tenant_id", tenantID.String()),
			slog.String("role", role),
			slog.String("feature", path),
		)
		d := allow(ReasonOverride)
		d.Rule = rule.Name
		d.Justification = rule.Justification
		return d
	}

	sub, err := e.subs.Get(ctx, tenantID)
	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return deny(ReasonSubscriptionNotFound)
	}
	if err != nil {
		return e.unavailable(ctx, "subscription lookup failed", err)
	}

	if !sub.IsActive() {
		if e.inactive.allows(path) {
			return allow(ReasonFeatureGranted)
		}
		return deny(ReasonSubscriptionInactive)
	}

	p, err := e.catalog.GetPlan(sub.PlanID)
	if errors.Is(err, plan.ErrPlanNotFound) {
		return deny(ReasonUnknownPlanOrRole)
	}
	if err != nil {
		return e.unavailable(ctx, "plan lookup failed", err)
	}

	roleTree, err := e.matrix.GrantTree(p.ID, role)
	if errors.Is(err, rolematrix.ErrRoleGrantNotFound) {
		return deny(ReasonUnknownPlanOrRole)
	}
	if err != nil {
		return e.unavailable(ctx, "role grant lookup failed", err)
	}

	merged := featurepath.Merge(p.Grants, roleTree)
	if merged.Resolve(path) {
		return allow(ReasonFeatureGranted)
	}

	d := deny(ReasonFeatureDenied)
	if required, ok := e.catalog.RequiredPlanFor(path); ok && required.Tier > p.Tier {
		d.RequiredPlan = required.ID
	}
	return d
}

// CheckLimit computes the LimitResult for one metered resource. The role
// participates only in override matching; pass an empty role when the
// caller has no acting user (e.g. background jobs).
func (e *Evaluator) CheckLimit(ctx context.Context, tenantID uuid.UUID, role string, res quota.Resource) (quota.LimitResult, error) {
	if rule, ok := e.overrides.ResolveQuota(tenantID, role); ok {
		e.log.LogAttrs(ctx, slog.LevelInfo, "quota bypass",
			slog.String("rule", rule.Name),
			slog.String("tenant_id", tenantID.String()),
			slog.String("resource", string(res)),
		)
		current, err := e.currentUsage(ctx, tenantID, res)
		if err != nil {
			return quota.LimitResult{}, err
		}
		return quota.Check(quota.LimitDef{Resource: res, Max: quota.Unlimited}, current), nil
	}

	p, err := e.tenantPlan(ctx, tenantID)
	if err != nil {
		return quota.LimitResult{}, err
	}

	def, ok := p.LimitFor(res)
	if !ok {
		return quota.LimitResult{}, fmt.Errorf("%w: plan %q does not meter %q", ErrResourceNotMetered, p.ID, res)
	}

	current, err := e.currentUsage(ctx, tenantID, res)
	if err != nil {
		return quota.LimitResult{}, err
	}

	return quota.Check(def, current), nil
}

// ListAlerts evaluates every metered resource of the tenant's plan and
// returns the threshold crossings. Alert acknowledgement state lives with
// the caller.
func (e *Evaluator) ListAlerts(ctx context.Context, tenantID uuid.UUID) ([]quota.Alert, error) {
	p, err := e.tenantPlan(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	usage, err := e.usage.LoadUsage(ctx, tenantID)
	if err != nil {
		return nil, errors.Join(ErrEvaluationUnavailable, err)
	}

	return quota.EvaluateAlerts(quota.CheckAll(p.Quotas, usage)), nil
}

// CanDowngrade reports whether the tenant may move to a lower-tier plan.
// The target must sit below the tenant's current tier, and current usage
// must fit the target plan's ceilings: usage at exactly a ceiling still
// fits, usage above it blocks the move. Blocking resources are returned so
// the caller can tell the tenant what to shed first.
func (e *Evaluator) CanDowngrade(ctx context.Context, tenantID uuid.UUID, targetPlanID string) (bool, []quota.LimitResult, error) {
	current, err := e.tenantPlan(ctx, tenantID)
	if err != nil {
		return false, nil, err
	}

	target, err := e.catalog.GetPlan(targetPlanID)
	if errors.Is(err, plan.ErrPlanNotFound) {
		return false, nil, fmt.Errorf("%w: %q", ErrUnknownPlan, targetPlanID)
	}
	if err != nil {
		return false, nil, errors.Join(ErrEvaluationUnavailable, err)
	}

	if target.Tier >= current.Tier {
		return false, nil, fmt.Errorf("%w: %q (%s) is not below %q (%s)",
			ErrNotADowngrade, target.ID, target.Tier, current.ID, current.Tier)
	}

	usage, err := e.usage.LoadUsage(ctx, tenantID)
	if err != nil {
		return false, nil, errors.Join(ErrEvaluationUnavailable, err)
	}

	var blockers []quota.LimitResult
	for _, r := range quota.CheckAll(target.Quotas, usage) {
		if !r.Unlimited && r.Current > r.Max {
			blockers = append(blockers, r)
		}
	}
	return len(blockers) == 0, blockers, nil
}

// CanProvisionRole reports whether a user with actingRole may create a user
// with targetRole under the tenant's plan.
func (e *Evaluator) CanProvisionRole(ctx context.Context, tenantID uuid.UUID, actingRole, targetRole string) (bool, error) {
	if _, ok := e.overrides.ResolveFeature(tenantID, actingRole); ok {
		return true, nil
	}

	p, err := e.tenantPlan(ctx, tenantID)
	if err != nil {
		return false, err
	}

	grant, err := e.matrix.GetRoleGrant(p.ID, actingRole)
	if errors.Is(err, rolematrix.ErrRoleGrantNotFound) {
		return false, fmt.Errorf("%w: plan %q role %q", ErrUnknownRole, p.ID, actingRole)
	}
	if err != nil {
		return false, errors.Join(ErrEvaluationUnavailable, err)
	}

	return grant.CanProvision(targetRole), nil
}

// tenantPlan resolves the tenant's active plan, mapping lookup outcomes to
// the typed error taxonomy.
func (e *Evaluator) tenantPlan(ctx context.Context, tenantID uuid.UUID) (plan.Plan, error) {
	sub, err := e.subs.Get(ctx, tenantID)
	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return plan.Plan{}, fmt.Errorf("%w: %s", ErrUnknownTenant, tenantID)
	}
	if err != nil {
		return plan.Plan{}, errors.Join(ErrEvaluationUnavailable, err)
	}

	if !sub.IsActive() {
		return plan.Plan{}, fmt.Errorf("%w: status %q", ErrSubscriptionInactive, sub.Status)
	}

	p, err := e.catalog.GetPlan(sub.PlanID)
	if errors.Is(err, plan.ErrPlanNotFound) {
		return plan.Plan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, sub.PlanID)
	}
	if err != nil {
		return plan.Plan{}, errors.Join(ErrEvaluationUnavailable, err)
	}
	return p, nil
}

func (e *Evaluator) currentUsage(ctx context.Context, tenantID uuid.UUID, res quota.Resource) (int64, error) {
	usage, err := e.usage.LoadUsage(ctx, tenantID)
	if err != nil {
		return 0, errors.Join(ErrEvaluationUnavailable, err)
	}
	return usage[res], nil
}

func (e *Evaluator) unavailable(ctx context.Context, msg string, err error) Decision {
	e.log.LogAttrs(ctx, slog.LevelError, msg, slog.Any("error", err))
	d := deny(ReasonEvaluationUnavailable)
	d.Err = errors.Join(ErrEvaluationUnavailable, err)
	return d
}
