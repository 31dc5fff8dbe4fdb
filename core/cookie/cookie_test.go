package cookie_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ambient/core/cookie"
	"github.com/dmitrymomot/ambient/core/scope"
)

func newContext(t *testing.T) context.Context {
	t.Helper()
	rc := scope.NewRequest(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)
	t.Cleanup(func() { scope.Clear(rc) })
	return scope.Install(context.Background(), rc)
}

func TestSet(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	cookie.Set(ctx, "test", "value")
	cookie.Set(ctx, "test2", "value2", cookie.WithMaxAge(150), cookie.WithSecure(true))

	lines := cookie.Lines(ctx)
	require.Len(t, lines, 2)
	assert.Equal(t, "test=value", lines[0])
	assert.Equal(t, "test2=value2; Max-Age=150; Secure", lines[1])
}

func TestSet_LastWriteWinsInPlace(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	cookie.Set(ctx, "a", "1")
	cookie.Set(ctx, "b", "2")
	cookie.Set(ctx, "a", "3", cookie.WithPath("/x"))

	assert.Equal(t, []string{"a=3; Path=/x", "b=2"}, cookie.Lines(ctx))
}

func TestRemove(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	cookie.Set(ctx, "test", "value")
	cookie.Set(ctx, "other", "value")
	cookie.Remove(ctx, "test")
	cookie.Remove(ctx, "missing")

	staged := cookie.Staged(ctx)
	require.Len(t, staged, 1)
	assert.Equal(t, "other", staged[0].Name)
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	cookie.Set(ctx, "test", "value")
	cookie.ClearAll(ctx)

	assert.Empty(t, cookie.Lines(ctx))

	cookie.Set(ctx, "after", "1")
	assert.Equal(t, []string{"after=1"}, cookie.Lines(ctx))
}

func TestExpire(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	cookie.Expire(ctx, "session", cookie.WithPath("/"))

	assert.Equal(t, []string{"session=; Max-Age=0; Path=/"}, cookie.Lines(ctx))
}

func TestRender(t *testing.T) {
	t.Parallel()

	expires := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))

	tests := []struct {
		name string
		opts cookie.Options
		want string
	}{
		{name: "plain", want: "k=v"},
		{name: "max_age", opts: cookie.Options{MaxAge: 86400}, want: "k=v; Max-Age=86400"},
		{
			name: "all_attributes",
			opts: cookie.Options{
				MaxAge:   10,
				Expires:  expires,
				Domain:   "example.com",
				Path:     "/",
				Secure:   true,
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			},
			want: "k=v; Max-Age=10; Expires=Sat, 01 Mar 2025 09:00:00 GMT; Domain=example.com; Path=/; Secure; HttpOnly; SameSite=Strict",
		},
		{name: "same_site_default_omitted", opts: cookie.Options{SameSite: http.SameSiteDefaultMode}, want: "k=v"},
		{name: "same_site_none", opts: cookie.Options{SameSite: http.SameSiteNoneMode}, want: "k=v; SameSite=None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cookie.Render("k", "v", tt.opts))
		})
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "session", cookie.Name("session=abc; Path=/"))
	assert.Equal(t, "flag", cookie.Name("flag"))
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	ctx := newContext(t)
	cfg := cookie.DefaultConfig()
	cookie.Set(ctx, "sid", "1", cfg.Options()...)
	cookie.Set(ctx, "pref", "2", append(cfg.Options(), cookie.WithHTTPOnly(false))...)

	assert.Equal(t, []string{
		"sid=1; Path=/; HttpOnly; SameSite=Lax",
		"pref=2; Path=/; SameSite=Lax",
	}, cookie.Lines(ctx))
}
