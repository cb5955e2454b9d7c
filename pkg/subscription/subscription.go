package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a subscription. The effective
// status is stored, not derived from free-text plan names or dates at every
// call site.
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
	StatusNone      Status = "none"
)

// Subscription ties a tenant to a plan for a validity window. Each tenant
// has at most one current subscription.
type Subscription struct {
	TenantID  uuid.UUID
	PlanID    string
	Status    Status
	StartsAt  time.Time
	EndsAt    time.Time // zero value means open-ended
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the subscription grants access right now.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// IsExpired reports whether the subscription has lapsed.
func (s *Subscription) IsExpired() bool {
	return s.Status == StatusExpired
}

// IsSuspended reports whether the subscription is administratively on hold.
func (s *Subscription) IsSuspended() bool {
	return s.Status == StatusSuspended
}

// DaysUntilExpirationAt returns the whole days left in the validity window
// at a given instant, rounding partial days up. Returns 0 once the window
// has closed and -1 for open-ended subscriptions.
func (s *Subscription) DaysUntilExpirationAt(now time.Time) int {
	if s.EndsAt.IsZero() {
		return -1
	}

	remaining := s.EndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int((remaining.Hours() + 23) / 24)
}

// DaysUntilExpiration returns the whole days left in the validity window.
func (s *Subscription) DaysUntilExpiration() int {
	return s.DaysUntilExpirationAt(time.Now().UTC())
}
