package decision

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/restokit/entitlement/pkg/entitlement"
	"github.com/restokit/entitlement/pkg/quota"
)

// Decider is the engine surface the module serves. *entitlement.Evaluator
// satisfies it; tests substitute lighter fakes.
type Decider interface {
	HasFeature(ctx context.Context, tenantID uuid.UUID, role, path string) entitlement.Decision
	CheckLimit(ctx context.Context, tenantID uuid.UUID, role string, res quota.Resource) (quota.LimitResult, error)
	ListAlerts(ctx context.Context, tenantID uuid.UUID) ([]quota.Alert, error)
	CanProvisionRole(ctx context.Context, tenantID uuid.UUID, actingRole, targetRole string) (bool, error)
	CanDowngrade(ctx context.Context, tenantID uuid.UUID, targetPlanID string) (bool, []quota.LimitResult, error)
}

// Service holds the handlers' shared dependencies.
type Service struct {
	decider Decider
	log     *slog.Logger
}

// NewService creates the decision API service. A nil logger discards logs.
func NewService(d Decider, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{decider: d, log: log}
}
