package header

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Directive is one Cache-Control response directive (RFC 7234 section 5.2.2).
type Directive string

const (
	MustRevalidate  Directive = "must-revalidate"
	NoStore         Directive = "no-store"
	NoTransform     Directive = "no-transform"
	Public          Directive = "public"
	ProxyRevalidate Directive = "proxy-revalidate"
)

// NoCache returns the no-cache directive, optionally restricted to fields.
func NoCache(fields ...string) Directive {
	return withFields("no-cache", fields)
}

// Private returns the private directive, optionally restricted to fields.
func Private(fields ...string) Directive {
	return withFields("private", fields)
}

// MaxAge returns max-age in whole seconds.
func MaxAge(d time.Duration) Directive {
	return Directive("max-age=" + seconds(d))
}

// SMaxAge returns s-maxage in whole seconds.
func SMaxAge(d time.Duration) Directive {
	return Directive("s-maxage=" + seconds(d))
}

// CacheControl renders directives in the given order.
func CacheControl(directives ...Directive) string {
	parts := make([]string, 0, len(directives))
	for _, d := range directives {
		if d != "" {
			parts = append(parts, string(d))
		}
	}
	return strings.Join(parts, ", ")
}

// SetCacheControl stages the Cache-Control header.
func SetCacheControl(ctx context.Context, directives ...Directive) {
	Set(ctx, "Cache-Control", CacheControl(directives...))
}

func withFields(name string, fields []string) Directive {
	if len(fields) == 0 {
		return Directive(name)
	}
	return Directive(name + `="` + strings.Join(fields, ", ") + `"`)
}

func seconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return strconv.FormatInt(int64(d/time.Second), 10)
}
