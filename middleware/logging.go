package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/logger"
	"github.com/dmitrymomot/ambient/core/request"
	"github.com/dmitrymomot/ambient/core/response"
	"github.com/dmitrymomot/ambient/core/scope"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx context.Context) bool

	// Logger is the slog logger to use (default: the request logger)
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogHeaders enables logging of request headers (default: false)
	LogHeaders bool

	// SensitiveHeaders is a list of header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging creates a request logging middleware writing to log. A nil log
// falls back to the logger attached to the request.
//
// The middleware sends the response itself so the record carries the final
// status and body size; the dispatcher then finds the request answered.
//
//	d := dispatcher.New(r, dispatcher.WithMiddleware(
//		middleware.RequestID(),
//		middleware.Logging(log),
//	))
func Logging(log *slog.Logger) handler.Middleware {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
//
//	middleware.LoggingWithConfig(middleware.LoggingConfig{
//		LogHeaders:           true,
//		SlowRequestThreshold: 2 * time.Second,
//		Skip: func(ctx context.Context) bool {
//			return request.URL(ctx).Path == "/health"
//		},
//	})
func LoggingWithConfig(cfg LoggingConfig) handler.Middleware {
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx context.Context) (any, error) {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			rc := scope.Must(ctx)

			res, err := handler.Call(ctx, next)
			ctx = scope.Restore(ctx, rc)
			sendErr := response.Respond(ctx, res, err)
			duration := time.Since(start)

			status, size := response.Status(ctx), int64(0)
			if w, ok := rc.ResponseWriter().(*response.Writer); ok {
				size = w.Size()
				if w.Written() {
					status = w.Status()
				}
			}

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(request.Method(ctx)),
				logger.Path(request.URL(ctx).Path),
				logger.StatusCode(status),
				logger.BytesOut(size),
				logger.Latency(duration),
				logger.UserAgent(request.Header(ctx, "User-Agent")),
			}
			if id, ok := GetRequestID(ctx); ok {
				attrs = append(attrs, logger.RequestID(id))
			}
			if cfg.LogHeaders {
				attrs = append(attrs, slog.Any("request_headers", redactHeaders(request.Headers(ctx), cfg.SensitiveHeaders)))
			}
			if err != nil {
				attrs = append(attrs, logger.Error(err))
			}
			if sendErr != nil {
				attrs = append(attrs, slog.String("send_error", sendErr.Error()))
			}

			level := cfg.LogLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			log := cfg.Logger
			if log == nil {
				log = rc.Logger()
			}
			log.LogAttrs(ctx, level, "HTTP request completed", attrs...)

			return res, err
		}
	}
}

func redactHeaders(h http.Header, sensitive []string) map[string]any {
	return lo.MapValues(h, func(values []string, key string) any {
		if slices.Contains(sensitive, key) {
			return "[REDACTED]"
		}
		if len(values) == 1 {
			return values[0]
		}
		return values
	})
}
