package decision

import (
	"github.com/go-chi/chi/v5"
)

// Router mounts the decision API. Mount it under a version prefix:
//
//	r := chi.NewRouter()
//	r.Mount("/v1", decision.Router(svc))
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/features/check", svc.handleFeatureCheck)
	r.Get("/limits/{tenant_id}/{resource}", svc.handleLimit)
	r.Get("/alerts/{tenant_id}", svc.handleAlerts)
	r.Post("/roles/can-provision", svc.handleCanProvision)
	r.Get("/downgrade/{tenant_id}/{target_plan}", svc.handleCanDowngrade)

	return r
}
