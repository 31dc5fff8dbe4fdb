package middleware

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/header"
	"github.com/dmitrymomot/ambient/core/request"
	"github.com/dmitrymomot/ambient/core/response"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(ctx context.Context) bool

	// AllowOrigins specifies allowed origins. Use "*" for all origins.
	// If empty, defaults to allowing all origins ("*")
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	// If empty, defaults to GET, HEAD, PUT, PATCH, POST, DELETE
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	// If empty, defaults to common headers including Authorization and Content-Type
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials are allowed.
	// Never sent together with a wildcard origin.
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int

	// AllowOriginFunc provides custom origin validation logic and takes
	// precedence over AllowOrigins. Returns the origin value to send and
	// whether the origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS returns a CORS middleware with default configuration.
// Default behavior allows all origins (*), common HTTP methods, and standard headers.
//
// Usage:
//
//	d := dispatcher.New(r, dispatcher.WithMiddleware(middleware.CORS()))
//
//	// Production usage with specific origins
//	middleware.CORSWithConfig(middleware.CORSConfig{
//		AllowOrigins:     []string{"https://myapp.com"},
//		AllowCredentials: true,
//		MaxAge:           86400,
//	})
//
// The default wildcard origin should only be used in development.
func CORS() handler.Middleware {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig returns a CORS middleware with custom configuration.
// Preflight requests are answered directly with 204, or 403 when the origin
// or requested method is not allowed. Other requests get the CORS headers
// staged before the wrapped handler runs.
func CORSWithConfig(cfg CORSConfig) handler.Middleware {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}

	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOriginsMap := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOriginsMap[origin] = true
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx context.Context) (any, error) {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			origin := request.Header(ctx, "Origin")

			var allowedOrigin string
			allowed := false

			// custom function, then wildcard or empty list, then explicit list
			if cfg.AllowOriginFunc != nil {
				allowedOrigin, allowed = cfg.AllowOriginFunc(origin)
			} else if len(cfg.AllowOrigins) == 0 || allowOriginsMap["*"] {
				allowedOrigin = "*"
				allowed = true
			} else if allowOriginsMap[origin] {
				allowedOrigin = origin
				allowed = true
			}

			requestMethod := request.Header(ctx, "Access-Control-Request-Method")
			if request.Method(ctx) == http.MethodOptions && requestMethod != "" {
				if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
					return response.New(response.Empty()).SetStatus(http.StatusForbidden), nil
				}

				resp := response.New(response.Empty()).
					SetStatus(http.StatusNoContent).
					SetHeader("Access-Control-Allow-Origin", allowedOrigin).
					SetHeader("Access-Control-Allow-Methods", allowMethods).
					SetHeader("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")

				if request.Header(ctx, "Access-Control-Request-Headers") != "" {
					resp.SetHeader("Access-Control-Allow-Headers", allowHeaders)
				}
				if cfg.AllowCredentials && allowedOrigin != "*" {
					resp.SetHeader("Access-Control-Allow-Credentials", "true")
				}
				if cfg.MaxAge > 0 {
					resp.SetHeader("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				return resp, nil
			}

			if allowed {
				header.EnableCORS(ctx, allowedOrigin)
				if cfg.AllowCredentials && allowedOrigin != "*" {
					header.Set(ctx, "Access-Control-Allow-Credentials", "true")
				}
				if exposeHeaders != "" {
					header.Set(ctx, "Access-Control-Expose-Headers", exposeHeaders)
				}
				header.Set(ctx, "Vary", "Origin")
			}

			return next(ctx)
		}
	}
}

// AllowOriginWildcard returns an AllowOriginFunc that allows any non-empty
// origin and echoes it back, so credentials can still be allowed.
func AllowOriginWildcard() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		return origin, true
	}
}

// AllowOriginSubdomain returns an AllowOriginFunc that allows the domain and
// all its subdomains, with or without a port. The domain is given without
// scheme (e.g., "example.com").
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.TrimPrefix(domain, "*.")
	domain = strings.TrimPrefix(domain, ".")
	domain = strings.ToLower(domain)
	domainWithDot := "." + domain

	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}

		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}

		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, domainWithDot) {
			return origin, true
		}
		return "", false
	}
}
