// Package logger builds slog loggers and provides attribute helpers with
// stable keys for request logging.
//
//	log := logger.New(
//		logger.WithProduction("api"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//	log.InfoContext(ctx, "request completed",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(200),
//	)
//
// Helpers such as Error and RequestID return an empty attribute for empty
// input, which slog drops.
package logger
