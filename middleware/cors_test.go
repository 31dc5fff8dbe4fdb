package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ambient/core/dispatcher"
	"github.com/dmitrymomot/ambient/core/router"
	"github.com/dmitrymomot/ambient/middleware"
)

func corsServer(cfg middleware.CORSConfig) http.Handler {
	r := router.New()
	r.Get("/api", text("data"))
	return dispatcher.New(r, dispatcher.WithMiddleware(middleware.CORSWithConfig(cfg)))
}

func TestCORS_SimpleRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         middleware.CORSConfig
		origin      string
		allowOrigin string
		credentials string
	}{
		{name: "default_wildcard", origin: "https://a.com", allowOrigin: "*"},
		{
			name:        "listed_origin",
			cfg:         middleware.CORSConfig{AllowOrigins: []string{"https://a.com"}, AllowCredentials: true},
			origin:      "https://a.com",
			allowOrigin: "https://a.com",
			credentials: "true",
		},
		{
			name:   "unlisted_origin",
			cfg:    middleware.CORSConfig{AllowOrigins: []string{"https://a.com"}},
			origin: "https://evil.com",
		},
		{
			name:        "no_credentials_with_wildcard",
			cfg:         middleware.CORSConfig{AllowOrigins: []string{"*"}, AllowCredentials: true},
			origin:      "https://a.com",
			allowOrigin: "*",
		},
		{
			name:        "origin_func",
			cfg:         middleware.CORSConfig{AllowOriginFunc: middleware.AllowOriginWildcard(), AllowCredentials: true},
			origin:      "https://b.com",
			allowOrigin: "https://b.com",
			credentials: "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api", nil)
			req.Header.Set("Origin", tt.origin)
			w := do(corsServer(tt.cfg), req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "data", w.Body.String())
			assert.Equal(t, tt.allowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.credentials, w.Header().Get("Access-Control-Allow-Credentials"))
			if tt.allowOrigin != "" {
				assert.Equal(t, "Origin", w.Header().Get("Vary"))
			}
		})
	}
}

func TestCORS_ExposeHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "https://a.com")
	w := do(corsServer(middleware.CORSConfig{ExposeHeaders: []string{"X-Total-Count", "X-Request-ID"}}), req)

	assert.Equal(t, "X-Total-Count,X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	cfg := middleware.CORSConfig{
		AllowOrigins:     []string{"https://a.com"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
		MaxAge:           600,
	}

	tests := []struct {
		name    string
		origin  string
		method  string
		headers string
		status  int
	}{
		{name: "allowed", origin: "https://a.com", method: http.MethodPost, headers: "Content-Type", status: http.StatusNoContent},
		{name: "allowed_no_headers", origin: "https://a.com", method: http.MethodGet, status: http.StatusNoContent},
		{name: "origin_denied", origin: "https://evil.com", method: http.MethodGet, status: http.StatusForbidden},
		{name: "method_denied", origin: "https://a.com", method: http.MethodDelete, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodOptions, "/api", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", tt.method)
			if tt.headers != "" {
				req.Header.Set("Access-Control-Request-Headers", tt.headers)
			}
			w := do(corsServer(cfg), req)

			assert.Equal(t, tt.status, w.Code)
			assert.Empty(t, w.Body.String())
			if tt.status != http.StatusNoContent {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
				return
			}

			assert.Equal(t, "https://a.com", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET,POST", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
			assert.Contains(t, w.Header().Get("Vary"), "Access-Control-Request-Method")
			if tt.headers != "" {
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Headers"))
			}
		})
	}
}

func TestCORS_Skip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "https://a.com")
	w := do(corsServer(middleware.CORSConfig{Skip: func(ctx context.Context) bool { return true }}), req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAllowOriginSubdomain(t *testing.T) {
	t.Parallel()

	allow := middleware.AllowOriginSubdomain("*.Example.com")

	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "https://example.com", want: true},
		{origin: "https://api.example.com", want: true},
		{origin: "http://a.b.example.com:8080", want: true},
		{origin: "https://example.com:3000", want: true},
		{origin: "https://notexample.com", want: false},
		{origin: "https://example.com.evil.io", want: false},
		{origin: "", want: false},
		{origin: "not a url", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			t.Parallel()

			got, ok := allow(tt.origin)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.origin, got)
			}
		})
	}
}
