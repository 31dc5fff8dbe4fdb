package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/ambient/core/config"
	"github.com/dmitrymomot/ambient/core/dispatcher"
	"github.com/dmitrymomot/ambient/core/logger"
	"github.com/dmitrymomot/ambient/core/router"
	"github.com/dmitrymomot/ambient/core/server"
	"github.com/dmitrymomot/ambient/middleware"
)

type App struct {
	config     Config
	router     *router.Router
	dispatcher *dispatcher.Dispatcher
	server     *server.Server
	logger     *slog.Logger
}

type AppOption func(*App) error

// NewFromEnv loads Config from the environment and builds the application.
func NewFromEnv(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

func New(cfg Config, opts ...AppOption) (*App, error) {
	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.New(append(cfg.Logger.Options(),
			logger.WithContextExtractors(middleware.RequestIDExtractor),
		)...)
	}

	if app.router == nil {
		app.router = router.New()
		if err := registerRoutes(app.router, cfg); err != nil {
			return nil, err
		}
	}

	app.dispatcher = dispatcher.New(app.router, append(cfg.Dispatcher.Options(),
		dispatcher.WithLogger(app.logger),
		dispatcher.WithMiddleware(
			middleware.RequestID(),
			middleware.Logging(app.logger),
			middleware.SecurityHeaders(),
			middleware.CORS(),
		),
	)...)

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithRouter(router *router.Router) AppOption {
	return func(app *App) error {
		if router == nil {
			return errors.New("router cannot be nil")
		}
		app.router = router
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Handler returns the dispatcher, wrapped in OpenTelemetry instrumentation
// when tracing is enabled.
func (a *App) Handler() http.Handler {
	if !a.config.Tracing {
		return a.dispatcher
	}
	return otelhttp.NewHandler(a.dispatcher, a.config.Logger.Service)
}

// Run serves the application until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "application starting",
		logger.Component("app"),
		slog.Int("routes", len(a.router.Routes())),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.Handler()))
	return g.Wait()
}
