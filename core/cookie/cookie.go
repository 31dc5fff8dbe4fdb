package cookie

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/ambient/core/scope"
)

// Entry is one staged cookie.
type Entry struct {
	Name    string
	Value   string
	Options Options
}

// Line renders the entry as a Set-Cookie header value.
func (e Entry) Line() string {
	return Render(e.Name, e.Value, e.Options)
}

// staged is the set-cookies namespace state.
type staged struct {
	entries []Entry
}

func (s *staged) Reset() { s.entries = s.entries[:0] }

func (s *staged) index(name string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.Name == name })
}

func stagedCookies(ctx context.Context) *staged {
	return scope.Get[staged](scope.Must(ctx).Store(), scope.NamespaceSetCookies)
}

// Set stages a cookie. A later Set for the same name replaces the earlier
// entry and keeps its position.
func Set(ctx context.Context, name, value string, opts ...Option) {
	s := stagedCookies(ctx)
	e := Entry{Name: name, Value: value, Options: NewOptions(opts...)}
	if i := s.index(name); i >= 0 {
		s.entries[i] = e
		return
	}
	s.entries = append(s.entries, e)
}

// Expire stages a cookie that tells the client to drop name.
func Expire(ctx context.Context, name string, opts ...Option) {
	Set(ctx, name, "", append(opts, WithMaxAge(-1))...)
}

// Remove unstages the cookie with the given name.
func Remove(ctx context.Context, name string) {
	s := stagedCookies(ctx)
	if i := s.index(name); i >= 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
	}
}

// ClearAll unstages every cookie.
func ClearAll(ctx context.Context) {
	scope.Must(ctx).Store().Clear(scope.NamespaceSetCookies)
}

// Staged returns a copy of the staged entries in insertion order.
func Staged(ctx context.Context) []Entry {
	return slices.Clone(stagedCookies(ctx).entries)
}

// Lines renders every staged entry as a Set-Cookie header value.
func Lines(ctx context.Context) []string {
	entries := stagedCookies(ctx).entries
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}
	return lines
}

// Render formats a Set-Cookie header value.
func Render(name, value string, o Options) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)

	switch {
	case o.MaxAge > 0:
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(o.MaxAge))
	case o.MaxAge < 0:
		b.WriteString("; Max-Age=0")
	}
	if !o.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(o.Expires.UTC().Format(http.TimeFormat))
	}
	if o.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(o.Domain)
	}
	if o.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(o.Path)
	}
	if o.Secure {
		b.WriteString("; Secure")
	}
	if o.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if s := sameSite(o.SameSite); s != "" {
		b.WriteString("; SameSite=")
		b.WriteString(s)
	}

	return b.String()
}

// Name extracts the cookie name from a rendered Set-Cookie line.
func Name(line string) string {
	name, _, _ := strings.Cut(line, "=")
	return strings.TrimSpace(name)
}

func sameSite(s http.SameSite) string {
	switch s {
	case http.SameSiteLaxMode:
		return "Lax"
	case http.SameSiteStrictMode:
		return "Strict"
	case http.SameSiteNoneMode:
		return "None"
	default:
		return ""
	}
}
