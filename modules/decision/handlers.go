package decision

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restokit/entitlement/pkg/binder"
	"github.com/restokit/entitlement/pkg/entitlement"
	"github.com/restokit/entitlement/pkg/quota"
)

type featureCheckRequest struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	Feature  string `json:"feature"`
}

// handleFeatureCheck answers "may this role on this tenant use this
// feature". Denials are 200 responses carrying the reason; only transport
// problems produce error statuses.
func (s *Service) handleFeatureCheck(w http.ResponseWriter, r *http.Request) {
	var req featureCheckRequest
	if err := binder.BindJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		writeBadRequest(w, "tenant_id must be a UUID")
		return
	}

	d := s.decider.HasFeature(r.Context(), tenantID, req.Role, req.Feature)
	if d.Reason == entitlement.ReasonEvaluationUnavailable {
		s.writeError(r.Context(), w, d.Err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// handleLimit reports quota state for one metered resource. An optional
// ?role= query parameter lets callers benefit from role-scoped overrides.
func (s *Service) handleLimit(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenant_id"))
	if err != nil {
		writeBadRequest(w, "tenant_id must be a UUID")
		return
	}
	res := quota.Resource(chi.URLParam(r, "resource"))
	role := r.URL.Query().Get("role")

	result, err := s.decider.CheckLimit(r.Context(), tenantID, role, res)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type alertsResponse struct {
	Alerts []quota.Alert `json:"alerts"`
}

func (s *Service) handleAlerts(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenant_id"))
	if err != nil {
		writeBadRequest(w, "tenant_id must be a UUID")
		return
	}

	alerts, err := s.decider.ListAlerts(r.Context(), tenantID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if alerts == nil {
		alerts = []quota.Alert{}
	}

	writeJSON(w, http.StatusOK, alertsResponse{Alerts: alerts})
}

type canDowngradeResponse struct {
	Allowed  bool                `json:"allowed"`
	Blockers []quota.LimitResult `json:"blockers"`
}

// handleCanDowngrade answers whether the tenant may move to a lower-tier
// plan, listing the resources whose usage blocks the move.
func (s *Service) handleCanDowngrade(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenant_id"))
	if err != nil {
		writeBadRequest(w, "tenant_id must be a UUID")
		return
	}
	targetPlan := chi.URLParam(r, "target_plan")

	allowed, blockers, err := s.decider.CanDowngrade(r.Context(), tenantID, targetPlan)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if blockers == nil {
		blockers = []quota.LimitResult{}
	}

	writeJSON(w, http.StatusOK, canDowngradeResponse{Allowed: allowed, Blockers: blockers})
}

type canProvisionRequest struct {
	TenantID   string `json:"tenant_id"`
	ActingRole string `json:"acting_role"`
	TargetRole string `json:"target_role"`
}

type canProvisionResponse struct {
	Allowed bool `json:"allowed"`
}

// handleCanProvision answers "may this role create users with that role".
// A role absent from the tenant's plan cannot provision anything, so an
// unknown acting role is a plain false, not an error.
func (s *Service) handleCanProvision(w http.ResponseWriter, r *http.Request) {
	var req canProvisionRequest
	if err := binder.BindJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		writeBadRequest(w, "tenant_id must be a UUID")
		return
	}

	allowed, err := s.decider.CanProvisionRole(r.Context(), tenantID, req.ActingRole, req.TargetRole)
	switch {
	case err == nil:
	case errors.Is(err, entitlement.ErrUnknownRole):
		allowed = false
	default:
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, canProvisionResponse{Allowed: allowed})
}
