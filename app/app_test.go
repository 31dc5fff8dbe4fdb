package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ambient/app"
	"github.com/dmitrymomot/ambient/core/cookie"
	"github.com/dmitrymomot/ambient/core/server"
	"github.com/dmitrymomot/ambient/core/static"
)

func newApp(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o644))

	cfg := app.Config{
		Static:       static.Config{BaseDir: dir},
		Cookie:       cookie.DefaultConfig(),
		Server:       server.DefaultConfig(),
		StaticPrefix: "/static",
		AdminToken:   "s3cret",
	}
	a, err := app.New(cfg, app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return a.Handler()
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestApp_Health(t *testing.T) {
	t.Parallel()

	w := do(newApp(t), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestApp_Echo(t *testing.T) {
	t.Parallel()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(`{"name":"ann"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/echo", &gz)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	w := do(newApp(t), req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"contentEncoding":["gzip"],"body":{"name":"ann"}}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{bad"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w = do(newApp(t), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApp_Visits(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/visits", nil)
	req.Header.Set("Cookie", "visits=2")
	w := do(newApp(t), req)

	assert.JSONEq(t, `{"visits":3}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "visits=3")
}

func TestApp_Admin(t *testing.T) {
	t.Parallel()

	h := newApp(t)

	w := do(h, httptest.NewRequest(http.MethodGet, "/admin/routes", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/routes", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w = do(h, req)
	require.Equal(t, http.StatusOK, w.Code)

	var routes []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	assert.Contains(t, routes, "GET /admin/routes")
	assert.Contains(t, routes, "GET /static/*")
}

func TestApp_Static(t *testing.T) {
	t.Parallel()

	h := newApp(t)

	w := do(h, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	req.Header.Set("If-None-Match", w.Header().Get("ETag"))
	assert.Equal(t, http.StatusNotModified, do(h, req).Code)
}

func TestNew_MissingStaticDir(t *testing.T) {
	t.Parallel()

	cfg := app.Config{
		Static:       static.Config{BaseDir: filepath.Join(t.TempDir(), "missing")},
		Server:       server.DefaultConfig(),
		StaticPrefix: "/static",
	}
	_, err := app.New(cfg)
	assert.Error(t, err)
}
