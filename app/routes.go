package app

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrymomot/ambient/core/body"
	"github.com/dmitrymomot/ambient/core/cookie"
	"github.com/dmitrymomot/ambient/core/health"
	"github.com/dmitrymomot/ambient/core/request"
	"github.com/dmitrymomot/ambient/core/router"
	"github.com/dmitrymomot/ambient/core/static"
	"github.com/dmitrymomot/ambient/middleware"
)

const visitsCookie = "visits"

func registerRoutes(r *router.Router, cfg Config) error {
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness(nil))
	r.Get("/ping", health.NoContent)
	r.Post("/echo", echo)
	r.Get("/visits", visits(cfg.Cookie))

	r.Route("/admin", func(r *router.Router) {
		r = r.With(middleware.Guard(bearerToken(cfg.AdminToken)))
		r.Get("/routes", listRoutes(r))
	})

	if cfg.StaticPrefix != "" {
		if info, err := os.Stat(cfg.Static.BaseDir); err != nil || !info.IsDir() {
			return fmt.Errorf("static directory %q: not a directory", cfg.Static.BaseDir)
		}
		r.Get(cfg.StaticPrefix+"/*", static.Dir(cfg.Static.BaseDir, cfg.Static.Options()...))
	}
	return nil
}

// echo answers with the parsed request body.
func echo(ctx context.Context) (any, error) {
	v, err := body.Parse(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"contentEncoding": body.ContentEncodings(ctx),
		"body":            v,
	}, nil
}

func visits(cfg cookie.Config) func(ctx context.Context) (any, error) {
	opts := cfg.Options()
	return func(ctx context.Context) (any, error) {
		n := 0
		if v, ok := request.Cookie(ctx, visitsCookie); ok {
			n, _ = strconv.Atoi(v)
		}
		n++
		cookie.Set(ctx, visitsCookie, strconv.Itoa(n), opts...)
		return map[string]int{"visits": n}, nil
	}
}

func listRoutes(r *router.Router) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		routes := r.Routes()
		out := make([]string, 0, len(routes))
		for _, rt := range routes {
			out = append(out, rt.Method+" "+rt.Pattern)
		}
		return out, nil
	}
}

// bearerToken allows requests carrying the token as a bearer credential. An
// empty token denies everything.
func bearerToken(token string) middleware.GuardFunc {
	return func(ctx context.Context) (bool, error) {
		if token == "" || !request.IsBearer(ctx) {
			return false, nil
		}
		return subtle.ConstantTimeCompare([]byte(request.AuthCredentials(ctx)), []byte(token)) == 1, nil
	}
}
