package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restokit/entitlement/pkg/entitlement"
	"github.com/restokit/entitlement/pkg/plan"
	"github.com/restokit/entitlement/pkg/quota"
	"github.com/restokit/entitlement/pkg/rolematrix"
	"github.com/restokit/entitlement/pkg/subscription"
)

type fixture struct {
	evaluator *entitlement.Evaluator
	subs      *subscription.InMemStore
	usage     *quota.InMemUsageSource
}

func newFixture(t *testing.T, opts ...entitlement.Option) *fixture {
	t.Helper()
	ctx := context.Background()

	catalog, err := plan.NewCatalog(ctx, plan.NewInMemSource(plan.SeedPlans()))
	require.NoError(t, err)

	matrix, err := rolematrix.NewMatrix(ctx, rolematrix.NewInMemSource(rolematrix.SeedGrants()))
	require.NoError(t, err)

	subs := subscription.NewInMemStore()
	usage := quota.NewInMemUsageSource()

	evaluator, err := entitlement.New(catalog, matrix, subs, usage, opts...)
	require.NoError(t, err)

	return &fixture{evaluator: evaluator, subs: subs, usage: usage}
}

func (f *fixture) subscribe(tenantID uuid.UUID, planID string, status subscription.Status) {
	f.subs.Put(subscription.Subscription{
		TenantID: tenantID,
		PlanID:   planID,
		Status:   status,
	})
}

func TestHasFeature(t *testing.T) {
	t.Parallel()

	t.Run("basic cashier", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanBasico, subscription.StatusActive)

		d := f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleCajero, "sales.basico")
		assert.True(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonFeatureGranted, d.Reason)

		d = f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleCajero, "mesas")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonFeatureDenied, d.Reason)

		// Plan-level features the matrix never mentions pass through for
		// every role on the plan.
		d = f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleCajero, "impresion")
		assert.True(t, d.Allowed)
	})

	t.Run("professional admin egresos split", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanProfesional, subscription.StatusActive)

		d := f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleAdmin, "egresos.basico")
		assert.True(t, d.Allowed, "only egresos.basico is granted: %s", d.Reason)

		d = f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleAdmin, "egresos.avanzado")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonFeatureDenied, d.Reason)
		assert.Equal(t, plan.PlanAvanzado, d.RequiredPlan, "denial should name the lowest tier offering the feature")
	})

	t.Run("enterprise superset", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanEnterprise, subscription.StatusActive)

		features := []string{
			"sales.basico", "sales.pedidos", "sales.avanzado",
			"inventory.products", "inventory.lots", "inventory.complete",
			"mesas", "lotes", "arqueo", "cocina",
			"egresos.basico", "egresos.avanzado",
			"delivery", "reservas", "analytics", "promociones",
			"api", "white_label", "impresion", "soporte",
		}
		roles := []string{
			rolematrix.RoleAdmin, rolematrix.RoleCajero, rolematrix.RoleCocinero,
			rolematrix.RoleMesero, rolematrix.RoleGerente, rolematrix.RoleSuperAdmin,
		}

		for _, role := range roles {
			for _, feature := range features {
				d := f.evaluator.HasFeature(context.Background(), tenantID, role, feature)
				assert.True(t, d.Allowed, "enterprise %s must have %s", role, feature)
			}
		}
	})

	t.Run("expired subscription denies every feature", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanEnterprise, subscription.StatusExpired)

		for _, feature := range []string{"sales.basico", "api", "mesas", "egresos.avanzado"} {
			d := f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleAdmin, feature)
			assert.False(t, d.Allowed)
			assert.Equal(t, entitlement.ReasonSubscriptionInactive, d.Reason)
		}
	})

	t.Run("suspended subscription denies", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanBasico, subscription.StatusSuspended)

		d := f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleAdmin, "sales.basico")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonSubscriptionInactive, d.Reason)
	})

	t.Run("no subscription record", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		d := f.evaluator.HasFeature(context.Background(), uuid.New(), rolematrix.RoleAdmin, "sales.basico")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonSubscriptionNotFound, d.Reason)
	})

	t.Run("unknown plan never falls back to a default", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, "plan_that_was_deleted", subscription.StatusActive)

		d := f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleAdmin, "sales.basico")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonUnknownPlanOrRole, d.Reason)
	})

	t.Run("role without a matrix entry", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanBasico, subscription.StatusActive)

		// mesero cannot exist on the basic plan; a stale session must not guess.
		d := f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleMesero, "mesas")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonUnknownPlanOrRole, d.Reason)
	})

	t.Run("malformed feature path", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		d := f.evaluator.HasFeature(context.Background(), uuid.New(), rolematrix.RoleAdmin, "a..b")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonInvalidPath, d.Reason)
	})
}

func TestHasFeatureInactivePolicy(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entitlement.WithInactivePolicy(
		entitlement.GrantSetWhenInactive("dashboard.resumen"),
	))
	tenantID := uuid.New()
	f.subscribe(tenantID, plan.PlanProfesional, subscription.StatusExpired)

	d := f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleAdmin, "dashboard.resumen")
	assert.True(t, d.Allowed, "grace set keeps the read-only dashboard")

	d = f.evaluator.HasFeature(context.Background(), tenantID, rolematrix.RoleAdmin, "sales.basico")
	assert.False(t, d.Allowed)
	assert.Equal(t, entitlement.ReasonSubscriptionInactive, d.Reason)
}

func TestHasFeatureOverrides(t *testing.T) {
	t.Parallel()

	designated := uuid.New()
	f := newFixture(t, entitlement.WithOverrides(entitlement.NewOverrideResolver(
		entitlement.TenantFullAccess(designated, "legacy pilot account, full access pending product review"),
	)))

	t.Run("designated tenant gets everything regardless of subscription", func(t *testing.T) {
		t.Parallel()

		// No subscription record at all.
		d := f.evaluator.HasFeature(context.Background(), designated, rolematrix.RoleCajero, "white_label")
		assert.True(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonOverride, d.Reason)
		assert.Equal(t, "tenant_full_access", d.Rule)
		assert.NotEmpty(t, d.Justification)
	})

	t.Run("other tenants are unaffected", func(t *testing.T) {
		t.Parallel()

		d := f.evaluator.HasFeature(context.Background(), uuid.New(), rolematrix.RoleCajero, "white_label")
		assert.False(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonSubscriptionNotFound, d.Reason)
	})
}

// failingStore simulates a persistence outage.
type failingStore struct{ err error }

// failingUsage simulates a usage counter backend outage.
type failingUsage struct{ err error }

func (s failingUsage) LoadUsage(ctx context.Context, tenantID uuid.UUID) (map[quota.Resource]int64, error) {
	return nil, s.err
}

func (s failingStore) Get(ctx context.Context, tenantID uuid.UUID) (*subscription.Subscription, error) {
	return nil, s.err
}

func TestHasFeatureEvaluationUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalog, err := plan.NewCatalog(ctx, plan.NewInMemSource(plan.SeedPlans()))
	require.NoError(t, err)
	matrix, err := rolematrix.NewMatrix(ctx, rolematrix.NewInMemSource(rolematrix.SeedGrants()))
	require.NoError(t, err)

	storeErr := errors.New("connection reset")
	evaluator, err := entitlement.New(catalog, matrix, failingStore{err: storeErr}, quota.NewInMemUsageSource())
	require.NoError(t, err)

	d := evaluator.HasFeature(ctx, uuid.New(), rolematrix.RoleAdmin, "sales.basico")
	assert.False(t, d.Allowed, "engine reports unavailable as denied; fail-open is the caller's call")
	assert.Equal(t, entitlement.ReasonEvaluationUnavailable, d.Reason)
	assert.ErrorIs(t, d.Err, entitlement.ErrEvaluationUnavailable)
	assert.ErrorIs(t, d.Err, storeErr)
}

func TestCheckLimit(t *testing.T) {
	t.Parallel()

	t.Run("bounded resource", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanBasico, subscription.StatusActive)
		f.usage.Set(tenantID, quota.ResourceProducts, 100)

		r, err := f.evaluator.CheckLimit(context.Background(), tenantID, rolematrix.RoleAdmin, quota.ResourceProducts)
		require.NoError(t, err)
		assert.True(t, r.Exceeded)
		assert.Equal(t, int64(0), r.Remaining)
		assert.Equal(t, 100.0, r.Percentage)
	})

	t.Run("unlimited resource", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanAvanzado, subscription.StatusActive)
		f.usage.Set(tenantID, quota.ResourceUsers, 500)

		r, err := f.evaluator.CheckLimit(context.Background(), tenantID, rolematrix.RoleAdmin, quota.ResourceUsers)
		require.NoError(t, err)
		assert.True(t, r.Unlimited)
		assert.False(t, r.Exceeded)
		assert.Equal(t, quota.Unlimited, r.Remaining)
		assert.Zero(t, r.Percentage)
	})

	t.Run("resource the plan does not meter", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanBasico, subscription.StatusActive)

		_, err := f.evaluator.CheckLimit(context.Background(), tenantID, rolematrix.RoleAdmin, "gpu_hours")
		assert.ErrorIs(t, err, entitlement.ErrResourceNotMetered)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.evaluator.CheckLimit(context.Background(), uuid.New(), rolematrix.RoleAdmin, quota.ResourceUsers)
		assert.ErrorIs(t, err, entitlement.ErrUnknownTenant)
	})

	t.Run("inactive subscription", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanBasico, subscription.StatusExpired)

		_, err := f.evaluator.CheckLimit(context.Background(), tenantID, rolematrix.RoleAdmin, quota.ResourceUsers)
		assert.ErrorIs(t, err, entitlement.ErrSubscriptionInactive)
	})

	t.Run("role quota bypass override", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entitlement.WithOverrides(entitlement.NewOverrideResolver(
			entitlement.RoleQuotaBypass("platform operators are never blocked by tenant quotas",
				rolematrix.RoleSuperAdmin),
		)))
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanBasico, subscription.StatusActive)
		f.usage.Set(tenantID, quota.ResourceProducts, 5000)

		r, err := f.evaluator.CheckLimit(context.Background(), tenantID, rolematrix.RoleSuperAdmin, quota.ResourceProducts)
		require.NoError(t, err)
		assert.True(t, r.Unlimited)
		assert.False(t, r.Exceeded)
		assert.Equal(t, int64(5000), r.Current)

		// The same check without the privileged role still enforces the plan.
		blocked, err := f.evaluator.CheckLimit(context.Background(), tenantID, rolematrix.RoleAdmin, quota.ResourceProducts)
		require.NoError(t, err)
		assert.True(t, blocked.Exceeded)
	})

	t.Run("bypass path still surfaces usage outages", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		catalog, err := plan.NewCatalog(ctx, plan.NewInMemSource(plan.SeedPlans()))
		require.NoError(t, err)
		matrix, err := rolematrix.NewMatrix(ctx, rolematrix.NewInMemSource(rolematrix.SeedGrants()))
		require.NoError(t, err)

		usageErr := errors.New("redis down")
		evaluator, err := entitlement.New(catalog, matrix, subscription.NewInMemStore(), failingUsage{err: usageErr},
			entitlement.WithOverrides(entitlement.NewOverrideResolver(
				entitlement.RoleQuotaBypass("platform operators are never blocked by tenant quotas",
					rolematrix.RoleSuperAdmin),
			)))
		require.NoError(t, err)

		_, err = evaluator.CheckLimit(ctx, uuid.New(), rolematrix.RoleSuperAdmin, quota.ResourceProducts)
		assert.ErrorIs(t, err, entitlement.ErrEvaluationUnavailable)
		assert.ErrorIs(t, err, usageErr)
	})
}

func TestListAlerts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tenantID := uuid.New()
	f.subscribe(tenantID, plan.PlanProfesional, subscription.StatusActive)

	// usuarios: 6/7 ≈ 86% → warning; productos: 500/500 → critical;
	// sucursales: 1/2 → silent.
	f.usage.Set(tenantID, quota.ResourceUsers, 6)
	f.usage.Set(tenantID, quota.ResourceProducts, 500)
	f.usage.Set(tenantID, quota.ResourceBranches, 1)

	alerts, err := f.evaluator.ListAlerts(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	bySeverity := map[quota.Severity]quota.Resource{}
	for _, a := range alerts {
		bySeverity[a.Severity] = a.Resource
	}
	assert.Equal(t, quota.ResourceUsers, bySeverity[quota.SeverityWarning])
	assert.Equal(t, quota.ResourceProducts, bySeverity[quota.SeverityCritical])
}

func TestCanProvisionRole(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	basicTenant := uuid.New()
	f.subscribe(basicTenant, plan.PlanBasico, subscription.StatusActive)

	advancedTenant := uuid.New()
	f.subscribe(advancedTenant, plan.PlanAvanzado, subscription.StatusActive)

	tests := []struct {
		name   string
		tenant uuid.UUID
		actor  string
		target string
		want   bool
	}{
		{"basic admin creates cashier", basicTenant, rolematrix.RoleAdmin, rolematrix.RoleCajero, true},
		{"basic admin cannot create waiter", basicTenant, rolematrix.RoleAdmin, rolematrix.RoleMesero, false},
		{"basic cashier cannot create admin", basicTenant, rolematrix.RoleCajero, rolematrix.RoleAdmin, false},
		{"advanced admin creates manager", advancedTenant, rolematrix.RoleAdmin, rolematrix.RoleGerente, true},
		{"advanced admin cannot create super_admin", advancedTenant, rolematrix.RoleAdmin, rolematrix.RoleSuperAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := f.evaluator.CanProvisionRole(context.Background(), tt.tenant, tt.actor, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown acting role", func(t *testing.T) {
		t.Parallel()

		_, err := f.evaluator.CanProvisionRole(context.Background(), basicTenant, "intern", rolematrix.RoleCajero)
		assert.ErrorIs(t, err, entitlement.ErrUnknownRole)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		_, err := f.evaluator.CanProvisionRole(context.Background(), uuid.New(), rolematrix.RoleAdmin, rolematrix.RoleCajero)
		assert.ErrorIs(t, err, entitlement.ErrUnknownTenant)
	})
}

func TestCanDowngrade(t *testing.T) {
	t.Parallel()

	t.Run("usage fits target ceilings", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanProfesional, subscription.StatusActive)
		f.usage.Set(tenantID, quota.ResourceUsers, 2) // at the basic ceiling, still fits
		f.usage.Set(tenantID, quota.ResourceProducts, 80)

		ok, blockers, err := f.evaluator.CanDowngrade(context.Background(), tenantID, plan.PlanBasico)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, blockers)
	})

	t.Run("over-ceiling usage blocks the move", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanProfesional, subscription.StatusActive)
		f.usage.Set(tenantID, quota.ResourceUsers, 5)
		f.usage.Set(tenantID, quota.ResourceProducts, 300)

		ok, blockers, err := f.evaluator.CanDowngrade(context.Background(), tenantID, plan.PlanBasico)
		require.NoError(t, err)
		assert.False(t, ok)

		resources := make([]quota.Resource, 0, len(blockers))
		for _, b := range blockers {
			resources = append(resources, b.Resource)
		}
		assert.ElementsMatch(t, []quota.Resource{quota.ResourceProducts, quota.ResourceUsers}, resources)
	})

	t.Run("same or higher tier is not a downgrade", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanProfesional, subscription.StatusActive)

		_, _, err := f.evaluator.CanDowngrade(context.Background(), tenantID, plan.PlanProfesional)
		assert.ErrorIs(t, err, entitlement.ErrNotADowngrade)

		_, _, err = f.evaluator.CanDowngrade(context.Background(), tenantID, plan.PlanEnterprise)
		assert.ErrorIs(t, err, entitlement.ErrNotADowngrade)
	})

	t.Run("unknown target plan", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanAvanzado, subscription.StatusActive)

		_, _, err := f.evaluator.CanDowngrade(context.Background(), tenantID, "freemium")
		assert.ErrorIs(t, err, entitlement.ErrUnknownPlan)
	})

	t.Run("inactive subscription", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		tenantID := uuid.New()
		f.subscribe(tenantID, plan.PlanProfesional, subscription.StatusSuspended)

		_, _, err := f.evaluator.CanDowngrade(context.Background(), tenantID, plan.PlanBasico)
		assert.ErrorIs(t, err, entitlement.ErrSubscriptionInactive)
	})
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalog, err := plan.NewCatalog(ctx, plan.NewInMemSource(plan.SeedPlans()))
	require.NoError(t, err)
	matrix, err := rolematrix.NewMatrix(ctx, rolematrix.NewInMemSource(rolematrix.SeedGrants()))
	require.NoError(t, err)

	_, err = entitlement.New(nil, matrix, subscription.NewInMemStore(), quota.NewInMemUsageSource())
	assert.Error(t, err)

	_, err = entitlement.New(catalog, matrix, nil, quota.NewInMemUsageSource())
	assert.Error(t, err)
}
