// entitlementd serves the plan entitlement and quota decision API for the
// POS suite. It loads the plan catalog and role restriction matrix (built-in
// seeds or YAML files), reads subscriptions from Postgres and usage counters
// from Redis or Postgres, and answers feature, quota, and provisioning
// questions over JSON.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/restokit/entitlement/modules/decision"
	"github.com/restokit/entitlement/pkg/config"
	"github.com/restokit/entitlement/pkg/entitlement"
	"github.com/restokit/entitlement/pkg/httpserver"
	"github.com/restokit/entitlement/pkg/logger"
	"github.com/restokit/entitlement/pkg/pg"
	"github.com/restokit/entitlement/pkg/plan"
	"github.com/restokit/entitlement/pkg/quota"
	"github.com/restokit/entitlement/pkg/redis"
	"github.com/restokit/entitlement/pkg/rolematrix"
	"github.com/restokit/entitlement/pkg/subscription"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"entitlementd"`

	// Empty paths fall back to the built-in seed catalog and matrix.
	PlanCatalogPath string `env:"PLAN_CATALOG_PATH"`
	RoleMatrixPath  string `env:"ROLE_MATRIX_PATH"`

	// UsageBackend selects where usage counters live: "redis" or "postgres".
	UsageBackend string `env:"USAGE_BACKEND" envDefault:"redis"`

	// QuotaBypassRoles lists system roles that are never blocked by tenant
	// quotas. Set to an empty value to disable the bypass entirely.
	QuotaBypassRoles []string `env:"OVERRIDE_QUOTA_BYPASS_ROLES" envDefault:"super_admin,admin"`

	// FullAccessTenant optionally names one tenant that bypasses all
	// entitlement checks, e.g. the operator's own demo restaurant.
	FullAccessTenant       string `env:"OVERRIDE_FULL_ACCESS_TENANT"`
	FullAccessTenantReason string `env:"OVERRIDE_FULL_ACCESS_REASON" envDefault:"operator designated tenant"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("entitlementd exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg  appConfig
		pgCfg   pg.Config
		httpCfg httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Env, appCfg.Name))
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	probes := []func(context.Context) error{pg.Healthcheck(pool)}

	var usage quota.UsageSource
	switch appCfg.UsageBackend {
	case "postgres":
		usage = quota.NewPostgresUsageSource(pool)
	case "redis":
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()

		usage = quota.NewRedisUsageSource(client)
		probes = append(probes, redis.Healthcheck(client))
	default:
		return fmt.Errorf("unknown usage backend %q", appCfg.UsageBackend)
	}

	catalog, err := buildCatalog(ctx, appCfg)
	if err != nil {
		return fmt.Errorf("plan catalog: %w", err)
	}
	matrix, err := buildMatrix(ctx, appCfg)
	if err != nil {
		return fmt.Errorf("role matrix: %w", err)
	}

	overrides, err := buildOverrides(appCfg)
	if err != nil {
		return fmt.Errorf("overrides: %w", err)
	}
	for _, rule := range overrides.Rules() {
		log.InfoContext(ctx, "override rule active", slog.String("rule", rule.Name))
	}

	evaluator, err := entitlement.New(catalog, matrix, subscription.NewPostgresStore(pool), usage,
		entitlement.WithLogger(log),
		entitlement.WithOverrides(overrides),
	)
	if err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/ready", httpserver.HealthCheckHandler(ctx, log, probes...))
	r.Mount("/v1", decision.Router(decision.NewService(evaluator, log)))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.InfoContext(ctx, "listening", slog.String("addr", httpCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.InfoContext(ctx, "stopped")
		}),
	)
	return srv.Run(ctx, r)
}

// buildOverrides assembles the deployment's exception rule list: system
// roles that bypass tenant quotas, plus an optional designated full-access
// tenant.
func buildOverrides(cfg appConfig) (*entitlement.OverrideResolver, error) {
	var rules []entitlement.Rule

	if len(cfg.QuotaBypassRoles) > 0 {
		rules = append(rules, entitlement.RoleQuotaBypass(
			"system roles are never blocked by tenant quotas",
			cfg.QuotaBypassRoles...))
	}

	if cfg.FullAccessTenant != "" {
		tenantID, err := uuid.Parse(cfg.FullAccessTenant)
		if err != nil {
			return nil, fmt.Errorf("OVERRIDE_FULL_ACCESS_TENANT: %w", err)
		}
		rules = append(rules, entitlement.TenantFullAccess(tenantID, cfg.FullAccessTenantReason))
	}

	return entitlement.NewOverrideResolver(rules...), nil
}

func buildCatalog(ctx context.Context, cfg appConfig) (*plan.Catalog, error) {
	var src plan.Source
	if cfg.PlanCatalogPath != "" {
		src = plan.NewFileSource(cfg.PlanCatalogPath)
	} else {
		src = plan.NewInMemSource(plan.SeedPlans())
	}
	return plan.NewCatalog(ctx, src)
}

func buildMatrix(ctx context.Context, cfg appConfig) (*rolematrix.Matrix, error) {
	var src rolematrix.Source
	if cfg.RoleMatrixPath != "" {
		src = rolematrix.NewFileSource(cfg.RoleMatrixPath)
	} else {
		src = rolematrix.NewInMemSource(rolematrix.SeedGrants())
	}
	return rolematrix.NewMatrix(ctx, src)
}
