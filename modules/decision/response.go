package decision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/restokit/entitlement/pkg/binder"
	"github.com/restokit/entitlement/pkg/entitlement"
	"github.com/restokit/entitlement/pkg/logger"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine and binding errors to HTTP statuses. The feature
// check endpoint never reaches here for domain denials; those travel as
// 200 decisions. Collaborator failures get a canned message: the raw error
// stays in the server log, never in the response body.
func (s *Service) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	msg := "internal server error"

	switch {
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType):
		status, code, msg = http.StatusBadRequest, "bad_request", err.Error()
	case errors.Is(err, entitlement.ErrUnknownTenant):
		status, code, msg = http.StatusNotFound, "tenant_not_found", err.Error()
	case errors.Is(err, entitlement.ErrUnknownPlan):
		status, code, msg = http.StatusNotFound, "plan_not_found", err.Error()
	case errors.Is(err, entitlement.ErrUnknownRole):
		status, code, msg = http.StatusNotFound, "role_not_found", err.Error()
	case errors.Is(err, entitlement.ErrResourceNotMetered):
		status, code, msg = http.StatusNotFound, "resource_not_metered", err.Error()
	case errors.Is(err, entitlement.ErrNotADowngrade):
		status, code, msg = http.StatusBadRequest, "not_a_downgrade", err.Error()
	case errors.Is(err, entitlement.ErrSubscriptionInactive):
		status, code, msg = http.StatusPaymentRequired, "subscription_inactive", err.Error()
	case errors.Is(err, entitlement.ErrEvaluationUnavailable):
		status, code = http.StatusServiceUnavailable, "evaluation_unavailable"
		msg = "decision temporarily unavailable"
	}

	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(ctx, "decision request failed", logger.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: errorDetail{
		Code:    code,
		Message: msg,
	}})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{
		Code:    "bad_request",
		Message: msg,
	}})
}
