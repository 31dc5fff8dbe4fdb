package health

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/header"
	"github.com/dmitrymomot/ambient/core/logger"
	"github.com/dmitrymomot/ambient/core/response"
	"github.com/dmitrymomot/ambient/core/scope"
)

// Readiness verifies all service dependencies are functioning.
// Answers "READY" when every check passes and 503 when any fails. A nil log
// uses the logger attached to the request.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc {
	return func(ctx context.Context) (any, error) {
		header.SetCacheControl(ctx, header.NoCache())

		g, gctx := errgroup.WithContext(ctx)
		for _, check := range checks {
			g.Go(func() error { return check(gctx) })
		}

		if err := g.Wait(); err != nil {
			l := log
			if l == nil {
				l = scope.Must(ctx).Logger()
			}
			l.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
			return nil, response.ErrServiceUnavailable
		}

		return "READY", nil
	}
}
