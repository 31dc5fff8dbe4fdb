package scope

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
)

type requestKey struct{}

// Params holds route parameters. A name captured more than once by a route
// pattern keeps every value in capture order.
type Params map[string][]string

// Get returns the first value captured for name.
func (p Params) Get(name string) string {
	if vs := p[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns all values captured for name.
func (p Params) Values(name string) []string {
	return p[name]
}

// Add appends a captured value.
func (p Params) Add(name, value string) {
	p[name] = append(p[name], value)
}

// Request is the state of one in-flight HTTP request: the transport pair,
// route params and the per-request cache store.
type Request struct {
	w      http.ResponseWriter
	r      *http.Request
	params Params
	store  *Store
	logger *slog.Logger
	limit  int64
	closed atomic.Bool
}

// NewRequest creates the request state for a transport request/response pair.
func NewRequest(w http.ResponseWriter, r *http.Request, params Params) *Request {
	if params == nil {
		params = Params{}
	}
	return &Request{
		w:      w,
		r:      r,
		params: params,
		store:  newStore(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Request returns the transport request.
func (rc *Request) Request() *http.Request { return rc.r }

// ResponseWriter returns the transport response sink.
func (rc *Request) ResponseWriter() http.ResponseWriter { return rc.w }

// Params returns the route params.
func (rc *Request) Params() Params { return rc.params }

// Store returns the per-request cache store.
func (rc *Request) Store() *Store { return rc.store }

// Logger returns the logger bound to this request.
func (rc *Request) Logger() *slog.Logger { return rc.logger }

// SetLogger binds a logger to this request. Nil is ignored.
func (rc *Request) SetLogger(l *slog.Logger) {
	if l != nil {
		rc.logger = l
	}
}

// BodyLimit returns the maximum decoded body size in bytes. Zero means no
// limit.
func (rc *Request) BodyLimit() int64 { return rc.limit }

// SetBodyLimit sets the maximum body size. Negative values are treated as zero.
func (rc *Request) SetBodyLimit(n int64) {
	rc.limit = max(n, 0)
}

// Install binds rc to ctx. Every accessor reached through the returned
// context reads and writes rc.
func Install(ctx context.Context, rc *Request) context.Context {
	return context.WithValue(ctx, requestKey{}, rc)
}

// Restore re-binds a previously captured request onto ctx. Use it when work
// continues on a context that did not derive from the installed one, such as
// a goroutine started with context.WithoutCancel or context.Background.
func Restore(ctx context.Context, rc *Request) context.Context {
	if cur, ok := ctx.Value(requestKey{}).(*Request); ok && cur == rc {
		return ctx
	}
	return Install(ctx, rc)
}

// Clear ends the request scope. Accessors that still hold a context bound to
// rc fail with ErrNotInRequestScope afterwards.
func Clear(rc *Request) {
	if rc != nil {
		rc.closed.Store(true)
	}
}

// Current returns the request installed in ctx.
func Current(ctx context.Context) (*Request, error) {
	if ctx == nil {
		return nil, ErrNotInRequestScope
	}
	rc, ok := ctx.Value(requestKey{}).(*Request)
	if !ok || rc == nil || rc.closed.Load() {
		return nil, ErrNotInRequestScope
	}
	return rc, nil
}

// Must returns the request installed in ctx and panics with
// ErrNotInRequestScope when there is none.
func Must(ctx context.Context) *Request {
	rc, err := Current(ctx)
	if err != nil {
		panic(err)
	}
	return rc
}
