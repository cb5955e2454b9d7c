package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces usage hashes; the full key is "usage:<tenant-uuid>".
const redisKeyPrefix = "usage:"

// RedisUsageSource reads usage counters from a Redis hash per tenant.
// Operational code keeps the hash fields current with HINCRBY on every
// resource create/delete; this source only reads the snapshot.
type RedisUsageSource struct {
	client redis.UniversalClient
}

// NewRedisUsageSource wraps an existing Redis client. The client's lifecycle
// belongs to the caller.
func NewRedisUsageSource(client redis.UniversalClient) *RedisUsageSource {
	return &RedisUsageSource{client: client}
}

// LoadUsage returns all counter fields of the tenant's usage hash. A missing
// hash means no recorded usage and returns an empty map. Fields that do not
// parse as integers are skipped rather than failing the whole snapshot.
func (s *RedisUsageSource) LoadUsage(ctx context.Context, tenantID uuid.UUID) (map[Resource]int64, error) {
	fields, err := s.client.HGetAll(ctx, redisKeyPrefix+tenantID.String()).Result()
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadUsage, err)
	}

	counters := make(map[Resource]int64, len(fields))
	for field, raw := range fields {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		counters[Resource(field)] = value
	}
	return counters, nil
}

// IncrementUsage adjusts a counter by delta and returns the new value.
// Exposed for operational code that keeps counters in the same Redis as the
// engine reads from.
func (s *RedisUsageSource) IncrementUsage(ctx context.Context, tenantID uuid.UUID, res Resource, delta int64) (int64, error) {
	value, err := s.client.HIncrBy(ctx, redisKeyPrefix+tenantID.String(), string(res), delta).Result()
	if err != nil {
		return 0, errors.Join(ErrFailedToLoadUsage, fmt.Errorf("increment %s: %w", res, err))
	}
	return value, nil
}
