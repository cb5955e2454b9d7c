package subscription

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/restokit/entitlement/pkg/pg"
)

// PostgresStore reads subscriptions from the subscriptions table. Writes go
// through the billing collaborator's own data layer; this store is read-only
// on purpose.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Get retrieves the subscription for a tenant, mapping a missing row to
// ErrSubscriptionNotFound.
func (s *PostgresStore) Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT tenant_id, plan_id, status, starts_at, ends_at, created_at, updated_at
		FROM subscriptions
		WHERE tenant_id = $1`,
		tenantID,
	)

	var (
		sub    Subscription
		status string
		endsAt sql.NullTime
	)
	err := row.Scan(&sub.TenantID, &sub.PlanID, &status, &sub.StartsAt, &endsAt, &sub.CreatedAt, &sub.UpdatedAt)
	if pg.IsNotFoundError(err) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadSubscription, err)
	}

	sub.Status = Status(status)
	if endsAt.Valid {
		sub.EndsAt = endsAt.Time
	}
	return &sub, nil
}
