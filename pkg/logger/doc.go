// Package logger provides a context-aware wrapper around log/slog with
// functional options, helper attribute constructors, and transparent
// injection of values stored in context.Context.
//
// New builds a *slog.Logger whose handler is wrapped with
// LogHandlerDecorator; the decorator runs registered ContextExtractor
// callbacks on every record before delegating to the underlying text or
// JSON handler.
//
// Attribute helpers (TenantID, Role, Feature, Resource, ...) live in
// attr.go and keep attribute naming consistent across services.
//
//	log := logger.New(
//	    logger.WithProduction("entitlementd"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "feature check",
//	    logger.TenantID(tenantID),
//	    logger.Feature("sales.basico"),
//	)
package logger
