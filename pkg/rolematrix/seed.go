package rolematrix

// SeedGrants returns the built-in restriction matrix of the POS suite,
// mirroring the per-plan role restrictions the product ships with. Roles
// absent under a plan (e.g. mesero on the basic plan) simply have no entry:
// such users cannot exist because no role on that plan may provision them.
func SeedGrants() []RoleGrant {
	return []RoleGrant{
		// --- basico ---
		{
			PlanID: "basico", Role: RoleAdmin,
			Allowed: []string{
				"sales.basico", "inventory.products",
				"dashboard.resumen", "dashboard.productos", "dashboard.categorias", "dashboard.usuarios",
			},
			Denied: []string{
				"mesas", "lotes", "arqueo", "cocina", "egresos", "delivery", "reservas",
				"analytics", "promociones", "api", "white_label",
			},
			Provisions: []string{RoleAdmin, RoleCajero},
		},
		{
			PlanID: "basico", Role: RoleCajero,
			Allowed: []string{"sales.basico"},
			Denied: []string{
				"inventory", "dashboard", "mesas", "lotes", "arqueo", "cocina", "egresos",
				"delivery", "reservas", "analytics", "promociones", "api", "white_label",
			},
			Provisions: []string{RoleCajero},
		},

		// --- profesional ---
		{
			PlanID: "profesional", Role: RoleAdmin,
			Allowed: []string{
				"sales.basico", "sales.pedidos", "inventory.products", "inventory.lots",
				"dashboard.resumen", "dashboard.productos", "dashboard.categorias",
				"dashboard.usuarios", "dashboard.mesas",
				"mesas", "lotes", "arqueo", "cocina", "egresos.basico",
			},
			Denied: []string{
				"egresos.avanzado", "delivery", "reservas", "analytics", "promociones",
				"api", "white_label",
			},
			Provisions: []string{RoleAdmin, RoleCajero, RoleCocinero, RoleMesero},
		},
		{
			PlanID: "profesional", Role: RoleCajero,
			Allowed: []string{"sales.basico", "sales.pedidos", "egresos.basico"},
			Denied: []string{
				"inventory", "dashboard", "mesas", "lotes", "arqueo", "cocina",
				"egresos.avanzado", "delivery", "reservas", "analytics", "promociones",
				"api", "white_label",
			},
			Provisions: []string{RoleCajero},
		},
		{
			PlanID: "profesional", Role: RoleCocinero,
			Allowed: []string{"cocina"},
			Denied: []string{
				"sales", "inventory", "dashboard", "mesas", "lotes", "arqueo", "egresos",
				"delivery", "reservas", "analytics", "promociones", "api", "white_label",
			},
			Provisions: []string{RoleCocinero},
		},
		{
			PlanID: "profesional", Role: RoleMesero,
			Allowed: []string{"mesas"},
			Denied: []string{
				"sales", "inventory", "dashboard", "lotes", "arqueo", "cocina", "egresos",
				"delivery", "reservas", "analytics", "promociones", "api", "white_label",
			},
			Provisions: []string{RoleMesero},
		},

		// --- avanzado ---
		{
			PlanID: "avanzado", Role: RoleAdmin,
			Allowed: append(avanzadoFullAccess(),
				"egresos.basico", "egresos.avanzado"),
			Denied:     []string{"api", "white_label"},
			Provisions: []string{RoleAdmin, RoleCajero, RoleCocinero, RoleMesero, RoleGerente},
		},
		{
			PlanID: "avanzado", Role: RoleCajero,
			Allowed: []string{
				"sales.basico", "sales.pedidos", "sales.avanzado",
				"egresos.basico", "egresos.avanzado",
			},
			Denied: []string{
				"inventory", "dashboard", "mesas", "lotes", "arqueo", "cocina",
				"delivery", "reservas", "analytics", "promociones", "api", "white_label",
			},
			Provisions: []string{RoleCajero},
		},
		{
			PlanID: "avanzado", Role: RoleCocinero,
			Allowed: []string{"cocina", "analytics"},
			Denied: []string{
				"sales", "inventory", "dashboard", "mesas", "lotes", "arqueo", "egresos",
				"delivery", "reservas", "promociones", "api", "white_label",
			},
			Provisions: []string{RoleCocinero},
		},
		{
			PlanID: "avanzado", Role: RoleMesero,
			Allowed: []string{"mesas", "reservas"},
			Denied: []string{
				"sales", "inventory", "dashboard", "lotes", "arqueo", "cocina", "egresos",
				"delivery", "analytics", "promociones", "api", "white_label",
			},
			Provisions: []string{RoleMesero},
		},
		{
			PlanID: "avanzado", Role: RoleGerente,
			Allowed: append(avanzadoFullAccess(),
				"egresos.basico", "egresos.avanzado"),
			Denied:     []string{"api", "white_label"},
			Provisions: []string{RoleGerente},
		},

		// --- enterprise: every role gets the full feature set ---
		enterpriseGrant(RoleAdmin, RoleAdmin, RoleCajero, RoleCocinero, RoleMesero, RoleGerente, RoleSuperAdmin),
		enterpriseGrant(RoleCajero, RoleCajero),
		enterpriseGrant(RoleCocinero, RoleCocinero),
		enterpriseGrant(RoleMesero, RoleMesero),
		enterpriseGrant(RoleGerente, RoleGerente),
		enterpriseGrant(RoleSuperAdmin, RoleSuperAdmin),
	}
}

// avanzadoFullAccess lists the feature paths shared by the advanced plan's
// managerial roles, without the egresos sub-paths.
func avanzadoFullAccess() []string {
	return []string{
		"sales.basico", "sales.pedidos", "sales.avanzado",
		"inventory.products", "inventory.lots", "inventory.complete",
		"dashboard.resumen", "dashboard.productos", "dashboard.categorias",
		"dashboard.usuarios", "dashboard.mesas", "dashboard.completo",
		"mesas", "lotes", "arqueo", "cocina",
		"delivery", "reservas", "analytics", "promociones",
	}
}

func enterpriseGrant(role string, provisions ...string) RoleGrant {
	return RoleGrant{
		PlanID: "enterprise",
		Role:   role,
		Allowed: append(avanzadoFullAccess(),
			"egresos.basico", "egresos.avanzado", "api", "white_label"),
		Denied:     nil,
		Provisions: provisions,
	}
}
