package request

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrymomot/ambient/core/scope"
)

type searchCache struct {
	raw    scope.Lazy[string]
	values scope.Lazy[url.Values]
	all    scope.Lazy[map[string]any]
}

func (c *searchCache) Reset() {
	c.raw.Reset()
	c.values.Reset()
	c.all.Reset()
}

func searchParams(ctx context.Context) *searchCache {
	return scope.Get[searchCache](scope.Must(ctx).Store(), scope.NamespaceSearchParams)
}

// IsArrayParam reports whether a query or form key collects repeated values.
func IsArrayParam(name string) bool {
	return strings.HasSuffix(name, "[]")
}

// RawSearchParams returns the query string including the leading "?", or an
// empty string when the URL has none.
func RawSearchParams(ctx context.Context) string {
	u := URL(ctx)
	raw, _ := searchParams(ctx).raw.Get(func() (string, error) {
		if u.RawQuery == "" && !u.ForceQuery {
			return "", nil
		}
		return "?" + u.RawQuery, nil
	})
	return raw
}

// SearchParams returns the decoded query values. Malformed pairs are skipped.
func SearchParams(ctx context.Context) url.Values {
	raw := RawSearchParams(ctx)
	v, _ := searchParams(ctx).values.Get(func() (url.Values, error) {
		vs, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
		if vs == nil {
			vs = url.Values{}
		}
		return vs, nil
	})
	return v
}

// SearchParam returns the first value of a scalar query param.
func SearchParam(ctx context.Context, name string) (string, bool) {
	vs, ok := SearchParams(ctx)[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// SearchParamValues returns every value of a query param in appearance order.
func SearchParamValues(ctx context.Context, name string) []string {
	return SearchParams(ctx)[name]
}

// AllSearchParams returns the query as a map where keys ending in "[]" hold
// a []string of every occurrence and other keys hold the last string value.
func AllSearchParams(ctx context.Context) map[string]any {
	values := SearchParams(ctx)
	all, _ := searchParams(ctx).all.Get(func() (map[string]any, error) {
		return CollectValues(values), nil
	})
	return all
}

// CollectValues applies the array-key convention to decoded form values.
func CollectValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		if IsArrayParam(k) {
			out[k] = append([]string(nil), vs...)
			continue
		}
		out[k] = vs[len(vs)-1]
	}
	return out
}
