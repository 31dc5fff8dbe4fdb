package header_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ambient/core/header"
	"github.com/dmitrymomot/ambient/core/scope"
)

func newContext(t *testing.T) context.Context {
	t.Helper()
	rc := scope.NewRequest(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)
	t.Cleanup(func() { scope.Clear(rc) })
	return scope.Install(context.Background(), rc)
}

func TestStaging(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	header.Set(ctx, "x-custom", "1")
	header.Set(ctx, "X-Custom", "2")
	header.SetContentType(ctx, "text/csv")
	header.EnableCORS(ctx, "")

	assert.Equal(t, "2", header.Get(ctx, "X-Custom"))
	assert.Equal(t, http.Header{
		"X-Custom":                    {"2"},
		"Content-Type":                {"text/csv"},
		"Access-Control-Allow-Origin": {"*"},
	}, header.Staged(ctx))

	header.Remove(ctx, "x-custom")
	assert.Empty(t, header.Get(ctx, "X-Custom"))
}

func TestStaged_ReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	header.Set(ctx, "A", "1")

	h := header.Staged(ctx)
	h.Set("A", "changed")
	assert.Equal(t, "1", header.Get(ctx, "A"))
}

func TestClearNamespace(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	header.Set(ctx, "A", "1")
	scope.Must(ctx).Store().Clear(scope.NamespaceSetHeaders)

	assert.Empty(t, header.Staged(ctx))
	header.Set(ctx, "B", "2")
	assert.Equal(t, "2", header.Get(ctx, "B"))
}

func TestCacheHelpers(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	header.SetAge(ctx, 90*time.Second)
	header.SetExpires(ctx, time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC))
	header.SetPragmaNoCache(ctx, true)
	header.SetCacheControl(ctx, header.Public, header.MaxAge(time.Hour), header.NoTransform)

	staged := header.Staged(ctx)
	assert.Equal(t, "90", staged.Get("Age"))
	assert.Equal(t, "Tue, 02 Jan 2024 03:04:05 GMT", staged.Get("Expires"))
	assert.Equal(t, "no-cache", staged.Get("Pragma"))
	assert.Equal(t, "public, max-age=3600, no-transform", staged.Get("Cache-Control"))
}

func TestCacheControl(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		directives []header.Directive
		want       string
	}{
		{name: "empty", want: ""},
		{name: "no_store", directives: []header.Directive{header.NoStore}, want: "no-store"},
		{name: "private_fields", directives: []header.Directive{header.Private("Set-Cookie")}, want: `private="Set-Cookie"`},
		{name: "no_cache_fields", directives: []header.Directive{header.NoCache("A", "B")}, want: `no-cache="A, B"`},
		{
			name:       "shared_cache",
			directives: []header.Directive{header.Public, header.SMaxAge(10 * time.Minute), header.ProxyRevalidate},
			want:       "public, s-maxage=600, proxy-revalidate",
		},
		{name: "negative_age", directives: []header.Directive{header.MaxAge(-time.Second), header.MustRevalidate}, want: "max-age=0, must-revalidate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, header.CacheControl(tt.directives...))
		})
	}
}
