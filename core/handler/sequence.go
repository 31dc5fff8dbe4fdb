package handler

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/ambient/core/logger"
	"github.com/dmitrymomot/ambient/core/scope"
)

// Sequence runs handlers in order. A handler other than the last passes the
// request on by failing: returning an error, returning an error value as its
// result, or panicking. The first result that is not a failure, or whatever
// the last handler produces, is the result of the sequence.
//
// The installed request is restored onto the context after every handler.
func Sequence(handlers ...HandlerFunc) HandlerFunc {
	return func(ctx context.Context) (any, error) {
		if len(handlers) == 0 {
			return nil, ErrEmptyChain
		}

		rc, _ := scope.Current(ctx)
		for i, h := range handlers {
			res, err := Call(ctx, h)
			if rc != nil {
				ctx = scope.Restore(ctx, rc)
			}

			if i == len(handlers)-1 {
				return res, err
			}
			if err == nil {
				if e, ok := res.(error); ok {
					err = e
				}
			}
			if err == nil {
				return res, nil
			}
			if rc != nil {
				logPassed(ctx, rc, i, err)
			}
		}
		return nil, ErrEmptyChain
	}
}

func logPassed(ctx context.Context, rc *scope.Request, i int, err error) {
	level := slog.LevelDebug
	if _, ok := err.(*PanicError); ok {
		level = slog.LevelError
	}
	rc.Logger().LogAttrs(ctx, level, "handler passed request on",
		logger.Component("handler"),
		logger.Path(rc.Request().URL.Path),
		slog.Int("position", i),
		logger.Error(err),
	)
}
