package dispatcher

import (
	"log/slog"

	"github.com/dmitrymomot/ambient/core/handler"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch failures and bound to every
// request scope.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMiddleware appends middlewares wrapping every route, including the
// not-found fallback. The first middleware is the outermost.
func WithMiddleware(middlewares ...handler.Middleware) Option {
	return func(d *Dispatcher) {
		d.middlewares = append(d.middlewares, middlewares...)
	}
}

// WithMaxBodySize limits request bodies to n bytes. Zero disables the limit.
func WithMaxBodySize(n int64) Option {
	return func(d *Dispatcher) {
		d.maxBodySize = n
	}
}

// WithDefaultHeaders stages headers on every response before handlers run.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(d *Dispatcher) {
		if d.defaultHeaders == nil {
			d.defaultHeaders = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			d.defaultHeaders[k] = v
		}
	}
}

// Config provides environment-based dispatcher settings.
type Config struct {
	MaxBodyBytes int64  `env:"HTTP_MAX_BODY_BYTES" envDefault:"10485760"`
	ServerHeader string `env:"HTTP_SERVER_HEADER" envDefault:"ambient"`
}

// Options converts the config into dispatcher options.
func (c Config) Options() []Option {
	opts := []Option{WithMaxBodySize(c.MaxBodyBytes)}
	if c.ServerHeader != "" {
		opts = append(opts, WithDefaultHeaders(map[string]string{"Server": c.ServerHeader}))
	}
	return opts
}
