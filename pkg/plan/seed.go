package plan

import (
	"slices"

	"github.com/restokit/entitlement/pkg/featurepath"
	"github.com/restokit/entitlement/pkg/quota"
)

// Canonical plan identifiers of the POS suite.
const (
	PlanBasico      = "basico"
	PlanProfesional = "profesional"
	PlanAvanzado    = "avanzado"
	PlanEnterprise  = "enterprise"
)

// Feature grant sets per tier. Each tier extends the previous one so the
// catalog satisfies the tier-monotonicity invariant by construction.
var (
	basicoGrants = []string{
		"sales.basico",
		"inventory.products",
		"dashboard.resumen", "dashboard.productos", "dashboard.categorias", "dashboard.usuarios",
		"impresion",
	}

	profesionalGrants = slices.Concat(basicoGrants, []string{
		"sales.pedidos",
		"inventory.lots",
		"dashboard.mesas",
		"mesas", "lotes", "arqueo", "cocina",
		"egresos.basico",
	})

	avanzadoGrants = slices.Concat(profesionalGrants, []string{
		"sales.avanzado",
		"inventory.complete",
		"dashboard.completo",
		"egresos.avanzado",
		"delivery", "reservas", "analytics", "promociones",
	})

	enterpriseGrants = slices.Concat(avanzadoGrants, []string{
		"api", "white_label", "soporte",
	})
)

// SeedPlans returns the built-in restaurant POS catalog. Deployments with a
// managed catalog use a file or database source instead; the seed doubles as
// the reference fixture for tests.
func SeedPlans() []Plan {
	return []Plan{
		{
			ID:          PlanBasico,
			Name:        "Básico",
			Description: "Plan básico para restaurantes pequeños",
			Tier:        TierBasic,
			Grants:      featurepath.NewTree().Allow(basicoGrants...),
			Quotas: map[quota.Resource]int64{
				quota.ResourceBranches:     1,
				quota.ResourceUsers:        2,
				quota.ResourceProducts:     100,
				quota.ResourceTransactions: 500,
				quota.ResourceStorage:      1 * 1024,
			},
		},
		{
			ID:          PlanProfesional,
			Name:        "Profesional",
			Description: "Plan profesional para restaurantes medianos",
			Tier:        TierProfessional,
			Grants:      featurepath.NewTree().Allow(profesionalGrants...),
			Quotas: map[quota.Resource]int64{
				quota.ResourceBranches:     2,
				quota.ResourceUsers:        7,
				quota.ResourceProducts:     500,
				quota.ResourceTransactions: 2000,
				quota.ResourceStorage:      5 * 1024,
			},
		},
		{
			ID:          PlanAvanzado,
			Name:        "Avanzado",
			Description: "Plan avanzado para restaurantes grandes",
			Tier:        TierAdvanced,
			Grants:      featurepath.NewTree().Allow(avanzadoGrants...),
			Quotas: map[quota.Resource]int64{
				quota.ResourceBranches:     3,
				quota.ResourceUsers:        quota.Unlimited,
				quota.ResourceProducts:     2000,
				quota.ResourceTransactions: 10000,
				quota.ResourceStorage:      20 * 1024,
			},
		},
		{
			ID:          PlanEnterprise,
			Name:        "Enterprise",
			Description: "Plan enterprise para cadenas de restaurantes",
			Tier:        TierEnterprise,
			Grants:      featurepath.NewTree().Allow(enterpriseGrants...),
			Quotas: map[quota.Resource]int64{
				quota.ResourceBranches:     quota.Unlimited,
				quota.ResourceUsers:        quota.Unlimited,
				quota.ResourceProducts:     quota.Unlimited,
				quota.ResourceTransactions: quota.Unlimited,
				quota.ResourceStorage:      quota.Unlimited,
			},
		},
	}
}
