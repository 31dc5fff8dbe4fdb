// Package health provides handlers for liveness and readiness checks.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//   - NoContent: returns 204 for minimal overhead
//
// Usage:
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health/ready", health.Readiness(log, db.Ping, cache.Ping))
//	r.Get("/ping", health.NoContent)
//
// Dependency checks follow the func(context.Context) error signature and
// run concurrently.
package health
