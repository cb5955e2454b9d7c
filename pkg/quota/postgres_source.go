package quota

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUsageSource reads usage counters from the usage_counters table.
// Rows are upserted by operational code each time a resource is created or
// deleted; reads here are plain snapshots with no locking.
type PostgresUsageSource struct {
	pool *pgxpool.Pool
}

// NewPostgresUsageSource wraps an existing connection pool. The pool's
// lifecycle belongs to the caller.
func NewPostgresUsageSource(pool *pgxpool.Pool) *PostgresUsageSource {
	return &PostgresUsageSource{pool: pool}
}

// LoadUsage returns every counter row for the tenant. A tenant with no rows
// returns an empty map, not an error.
func (s *PostgresUsageSource) LoadUsage(ctx context.Context, tenantID uuid.UUID) (map[Resource]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT resource, current_value FROM usage_counters WHERE tenant_id = $1`,
		tenantID,
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadUsage, err)
	}
	defer rows.Close()

	counters := make(map[Resource]int64)
	for rows.Next() {
		var (
			resource string
			value    int64
		)
		if err := rows.Scan(&resource, &value); err != nil {
			return nil, errors.Join(ErrFailedToLoadUsage, err)
		}
		counters[Resource(resource)] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToLoadUsage, err)
	}

	return counters, nil
}
