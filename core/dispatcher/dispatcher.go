package dispatcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/header"
	"github.com/dmitrymomot/ambient/core/logger"
	"github.com/dmitrymomot/ambient/core/response"
	"github.com/dmitrymomot/ambient/core/router"
	"github.com/dmitrymomot/ambient/core/scope"
)

// Dispatcher serves requests from a route table.
type Dispatcher struct {
	router         *router.Router
	logger         *slog.Logger
	middlewares    []handler.Middleware
	maxBodySize    int64
	defaultHeaders map[string]string
}

// New creates a dispatcher for r.
func New(r *router.Router, opts ...Option) *Dispatcher {
	if r == nil {
		r = router.New()
	}
	d := &Dispatcher{
		router: r,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("request pipeline panicked",
				logger.Component("dispatcher"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				slog.Any("panic", rec),
				logger.Stack(debug.Stack()),
			)
		}
	}()

	ww := response.NewWriter(w)
	if d.maxBodySize > 0 && r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(ww, r.Body, d.maxBodySize)
	}

	route, params, found := d.router.Lookup(r.Method, r.URL.Path)

	rc := scope.NewRequest(ww, r, params)
	rc.SetLogger(d.logger)
	rc.SetBodyLimit(d.maxBodySize)
	ctx := scope.Install(r.Context(), rc)
	defer scope.Clear(rc)

	for k, v := range d.defaultHeaders {
		header.Set(ctx, k, v)
	}

	var h handler.HandlerFunc = notFound
	if found {
		h = route.Handler()
	}
	h = handler.Chain(h, d.middlewares...)

	res, err := handler.Call(ctx, h)
	ctx = scope.Restore(ctx, rc)
	if err != nil {
		d.logHandlerError(ctx, r, err)
	}

	if err := response.Respond(ctx, res, err); err != nil {
		d.logRespondError(ctx, r, err)
	}
}

func notFound(context.Context) (any, error) {
	return nil, response.ErrNotFound
}

func (d *Dispatcher) logHandlerError(ctx context.Context, r *http.Request, err error) {
	attrs := []slog.Attr{
		logger.Component("dispatcher"),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Error(err),
	}

	var (
		httpErr  response.HTTPError
		panicErr *handler.PanicError
	)
	switch {
	case errors.As(err, &panicErr):
		attrs = append(attrs, logger.Stack(panicErr.Stack))
		d.logger.LogAttrs(ctx, slog.LevelError, "handler panicked", attrs...)
	case errors.Is(err, scope.ErrContractViolation):
		d.logger.LogAttrs(ctx, slog.LevelError, "contract violation", attrs...)
	case errors.As(err, &httpErr) && httpErr.StatusCode() < http.StatusInternalServerError:
		d.logger.LogAttrs(ctx, slog.LevelDebug, "request rejected", append(attrs, logger.StatusCode(httpErr.StatusCode()))...)
	default:
		d.logger.LogAttrs(ctx, slog.LevelError, "unhandled handler error", attrs...)
	}
}

func (d *Dispatcher) logRespondError(ctx context.Context, r *http.Request, err error) {
	level := slog.LevelError
	if errors.Is(err, response.ErrWriteResponse) {
		level = slog.LevelWarn
	}
	d.logger.LogAttrs(ctx, level, "failed to send response",
		logger.Component("dispatcher"),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Error(err),
	)
}
