// Package header stages outgoing response headers on the request installed
// in a context. Staged headers are merged under the headers of the response
// model when it is sent, so values set directly on a response win.
package header

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/ambient/core/scope"
)

type staged struct {
	h http.Header
}

func (s *staged) Reset() { clear(s.h) }

func stagedHeaders(ctx context.Context) http.Header {
	s := scope.Get[staged](scope.Must(ctx).Store(), scope.NamespaceSetHeaders)
	if s.h == nil {
		s.h = make(http.Header)
	}
	return s.h
}

// Set stages a header, replacing any value staged earlier under the same
// canonical name.
func Set(ctx context.Context, name, value string) {
	stagedHeaders(ctx).Set(name, value)
}

// Get returns the staged value for name.
func Get(ctx context.Context, name string) string {
	return stagedHeaders(ctx).Get(name)
}

// Remove unstages a header.
func Remove(ctx context.Context, name string) {
	stagedHeaders(ctx).Del(name)
}

// SetContentType stages the Content-Type header.
func SetContentType(ctx context.Context, value string) {
	Set(ctx, "Content-Type", value)
}

// EnableCORS stages Access-Control-Allow-Origin. An empty origin allows any.
func EnableCORS(ctx context.Context, origin string) {
	if origin == "" {
		origin = "*"
	}
	Set(ctx, "Access-Control-Allow-Origin", origin)
}

// Staged returns a copy of the staged headers.
func Staged(ctx context.Context) http.Header {
	return stagedHeaders(ctx).Clone()
}

// SetAge stages the Age header in whole seconds.
func SetAge(ctx context.Context, age time.Duration) {
	Set(ctx, "Age", strconv.FormatInt(int64(age/time.Second), 10))
}

// SetExpires stages the Expires header as an HTTP-date.
func SetExpires(ctx context.Context, t time.Time) {
	Set(ctx, "Expires", t.UTC().Format(http.TimeFormat))
}

// SetPragmaNoCache stages "Pragma: no-cache", or an empty Pragma when
// enabled is false.
func SetPragmaNoCache(ctx context.Context, enabled bool) {
	v := ""
	if enabled {
		v = "no-cache"
	}
	Set(ctx, "Pragma", v)
}
