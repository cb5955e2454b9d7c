// Package httpserver wraps net/http with graceful shutdown, signal
// handling, lifecycle hooks, and a combined liveness/readiness handler.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	return srv.Run(ctx, router)
package httpserver
