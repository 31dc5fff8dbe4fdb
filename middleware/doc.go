// Package middleware provides handler.Middleware implementations for
// cross-cutting concerns: request IDs, request logging, guards, CORS and
// security headers.
//
// Middlewares run inside the request scope, so they stage headers through
// the header package and read the request through the request package:
//
//	d := dispatcher.New(r, dispatcher.WithMiddleware(
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.SecurityHeaders(),
//		middleware.CORS(),
//	))
//
// Guards protect single routes:
//
//	r.With(middleware.Guard(isAdmin)).Delete("/users/{id}", deleteUser)
//
// Place RequestID before Logging so the log record carries the id.
package middleware
