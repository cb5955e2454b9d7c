package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restokit/entitlement/pkg/subscription"
)

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status    subscription.Status
		active    bool
		expired   bool
		suspended bool
	}{
		{subscription.StatusActive, true, false, false},
		{subscription.StatusExpired, false, true, false},
		{subscription.StatusSuspended, false, false, true},
		{subscription.StatusNone, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			sub := subscription.Subscription{Status: tt.status}
			assert.Equal(t, tt.active, sub.IsActive())
			assert.Equal(t, tt.expired, sub.IsExpired())
			assert.Equal(t, tt.suspended, sub.IsSuspended())
		})
	}
}

func TestDaysUntilExpirationAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		endsAt time.Time
		want   int
	}{
		{"open-ended", time.Time{}, -1},
		{"already closed", now.Add(-time.Hour), 0},
		{"closes this instant", now, 0},
		{"half a day rounds up", now.Add(12 * time.Hour), 1},
		{"five full days", now.AddDate(0, 0, 5), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sub := subscription.Subscription{EndsAt: tt.endsAt}
			assert.Equal(t, tt.want, sub.DaysUntilExpirationAt(now))
		})
	}
}

func TestInMemStore(t *testing.T) {
	t.Parallel()

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewInMemStore()
		_, err := store.Get(context.Background(), uuid.New())
		assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewInMemStore()
		tenantID := uuid.New()
		store.Put(subscription.Subscription{
			TenantID: tenantID,
			PlanID:   "profesional",
			Status:   subscription.StatusActive,
		})

		sub, err := store.Get(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Equal(t, "profesional", sub.PlanID)
		assert.True(t, sub.IsActive())
	})

	t.Run("delete removes the record", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewInMemStore()
		tenantID := uuid.New()
		store.Put(subscription.Subscription{TenantID: tenantID, Status: subscription.StatusActive})
		store.Delete(tenantID)

		_, err := store.Get(context.Background(), tenantID)
		assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewInMemStore()
		tenantID := uuid.New()
		store.Put(subscription.Subscription{TenantID: tenantID, Status: subscription.StatusActive})

		sub, err := store.Get(context.Background(), tenantID)
		require.NoError(t, err)
		sub.Status = subscription.StatusExpired

		again, err := store.Get(context.Background(), tenantID)
		require.NoError(t, err)
		assert.True(t, again.IsActive())
	})
}
