// Package request exposes read accessors for the request installed in a
// context by the dispatcher. Every accessor caches what it parses in the
// request's store, so repeated calls are cheap and return identical values.
//
// All functions panic with scope.ErrNotInRequestScope when ctx carries no
// active request.
package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/ambient/core/scope"
)

// ErrReadBody is returned when the request body cannot be read.
var ErrReadBody = errors.New("failed to read request body")

// BodyCache is the state of the body namespace shared by this package (raw
// bytes) and the body decoder (sniffing flags, decoded value).
type BodyCache struct {
	Raw          scope.Lazy[[]byte]
	Encodings    scope.Lazy[[]string]
	Parsed       scope.Lazy[any]
	IsJSON       scope.Lazy[bool]
	IsHTML       scope.Lazy[bool]
	IsXML        scope.Lazy[bool]
	IsText       scope.Lazy[bool]
	IsBinary     scope.Lazy[bool]
	IsFormData   scope.Lazy[bool]
	IsURLEncoded scope.Lazy[bool]
	IsCompressed scope.Lazy[bool]
	Decoded      scope.Lazy[[]byte]
}

// Reset implements scope.Resetter.
func (c *BodyCache) Reset() {
	c.Raw.Reset()
	c.Encodings.Reset()
	c.Parsed.Reset()
	c.IsJSON.Reset()
	c.IsHTML.Reset()
	c.IsXML.Reset()
	c.IsText.Reset()
	c.IsBinary.Reset()
	c.IsFormData.Reset()
	c.IsURLEncoded.Reset()
	c.IsCompressed.Reset()
	c.Decoded.Reset()
}

// Body returns the body namespace of the installed request.
func Body(ctx context.Context) *BodyCache {
	return scope.Get[BodyCache](scope.Must(ctx).Store(), scope.NamespaceBody)
}

// Raw returns the transport request.
func Raw(ctx context.Context) *http.Request {
	return scope.Must(ctx).Request()
}

// Method returns the request method.
func Method(ctx context.Context) string {
	return Raw(ctx).Method
}

// URL returns the request URL.
func URL(ctx context.Context) *url.URL {
	return Raw(ctx).URL
}

// Headers returns the request headers.
func Headers(ctx context.Context) http.Header {
	return Raw(ctx).Header
}

// Header returns the first value of the named request header.
func Header(ctx context.Context, name string) string {
	return Raw(ctx).Header.Get(name)
}

// RawBody reads the whole request body once and returns the buffered bytes
// on every later call.
func RawBody(ctx context.Context) ([]byte, error) {
	r := Raw(ctx)
	return Body(ctx).Raw.Get(func() ([]byte, error) {
		if r.Body == nil || r.Body == http.NoBody {
			return []byte{}, nil
		}
		defer r.Body.Close()

		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
		}
		return b, nil
	})
}

// BodyLimit returns the body size limit of the installed request. Zero means
// no limit.
func BodyLimit(ctx context.Context) int64 {
	return scope.Must(ctx).BodyLimit()
}

// RouteParams returns the params captured by the matched route.
func RouteParams(ctx context.Context) scope.Params {
	return scope.Must(ctx).Params()
}

// RouteParam returns the first value captured for name.
func RouteParam(ctx context.Context, name string) string {
	return scope.Must(ctx).Params().Get(name)
}
