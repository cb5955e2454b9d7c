package entitlement

import (
	"context"

	"github.com/google/uuid"
)

type tenantIDCtxKey struct{}
type roleCtxKey struct{}

// SetTenantIDToContext stores the tenant ID for downstream guards.
func SetTenantIDToContext(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantIDCtxKey{}, tenantID)
}

// GetTenantIDFromContext retrieves the tenant ID, if present.
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(tenantIDCtxKey{}).(uuid.UUID)
	return id, ok
}

// SetRoleToContext stores the acting role for downstream guards.
func SetRoleToContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext retrieves the acting role, if present.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok
}
