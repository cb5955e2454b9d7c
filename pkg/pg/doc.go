// Package pg wires PostgreSQL connectivity for the entitlement service:
// pool construction with startup retries, goose-based schema migrations,
// a readiness probe, and error classification helpers for pgx.
//
//	pool, err := pg.Connect(ctx, cfg.Postgres)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
//	    return err
//	}
package pg
