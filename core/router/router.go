package router

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/scope"
)

// methodAny marks routes registered for every method.
const methodAny = "*"

var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// Route is one registered route.
type Route struct {
	Method      string
	Pattern     string
	Handlers    []handler.HandlerFunc
	Middlewares []handler.Middleware

	segments []segment
}

// Handler returns the route's handler sequence wrapped in its middlewares.
func (rt *Route) Handler() handler.HandlerFunc {
	return handler.Chain(handler.Sequence(rt.Handlers...), rt.Middlewares...)
}

type table struct {
	mu     sync.RWMutex
	routes []*Route
}

// Router registers routes into a table shared with the routers derived from
// it by With and Route.
type Router struct {
	table       *table
	prefix      string
	middlewares []handler.Middleware
}

// New creates an empty router.
func New() *Router {
	return &Router{table: &table{}}
}

// Handle registers handlers for method and pattern. It panics on an invalid
// method or pattern, or when handlers is empty.
func (r *Router) Handle(method, pattern string, handlers ...handler.HandlerFunc) {
	method = strings.ToUpper(method)
	if method != methodAny && !slices.Contains(methods, method) {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidMethod, method))
	}
	if len(handlers) == 0 {
		panic(fmt.Errorf("%w: %s %s", ErrNoHandlers, method, pattern))
	}

	full := r.join(pattern)
	segments, err := parsePattern(full)
	if err != nil {
		panic(err)
	}

	r.table.mu.Lock()
	defer r.table.mu.Unlock()
	r.table.routes = append(r.table.routes, &Route{
		Method:      method,
		Pattern:     full,
		Handlers:    slices.Clone(handlers),
		Middlewares: slices.Clone(r.middlewares),
		segments:    segments,
	})
}

func (r *Router) Get(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(http.MethodGet, pattern, handlers...)
}

func (r *Router) Head(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(http.MethodHead, pattern, handlers...)
}

func (r *Router) Post(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(http.MethodPost, pattern, handlers...)
}

func (r *Router) Put(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(http.MethodPut, pattern, handlers...)
}

func (r *Router) Patch(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(http.MethodPatch, pattern, handlers...)
}

func (r *Router) Delete(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(http.MethodDelete, pattern, handlers...)
}

func (r *Router) Options(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(http.MethodOptions, pattern, handlers...)
}

// Any registers handlers for every method.
func (r *Router) Any(pattern string, handlers ...handler.HandlerFunc) {
	r.Handle(methodAny, pattern, handlers...)
}

// With returns a router sharing this table whose routes are wrapped in
// middlewares, after the ones already applied to r.
func (r *Router) With(middlewares ...handler.Middleware) *Router {
	return &Router{
		table:       r.table,
		prefix:      r.prefix,
		middlewares: append(slices.Clone(r.middlewares), middlewares...),
	}
}

// Route registers the routes added by fn under prefix.
func (r *Router) Route(prefix string, fn func(r *Router)) {
	fn(&Router{
		table:       r.table,
		prefix:      r.join(prefix),
		middlewares: slices.Clone(r.middlewares),
	})
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []Route {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	out := make([]Route, 0, len(r.table.routes))
	for _, rt := range r.table.routes {
		out = append(out, *rt)
	}
	return out
}

// Lookup finds the most specific route for method and path.
func (r *Router) Lookup(method, path string) (*Route, scope.Params, bool) {
	rt, params, ok := r.lookup(method, path)
	if !ok && method == http.MethodHead {
		return r.lookup(http.MethodGet, path)
	}
	return rt, params, ok
}

func (r *Router) lookup(method, path string) (*Route, scope.Params, bool) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	parts := splitPath(path)

	var (
		best       *Route
		bestParams scope.Params
	)
	for _, rt := range r.table.routes {
		if rt.Method != method && rt.Method != methodAny {
			continue
		}
		params, ok := match(rt.segments, parts)
		if !ok {
			continue
		}
		if best == nil || moreSpecific(rt.segments, best.segments) {
			best, bestParams = rt, params
		}
	}
	return best, bestParams, best != nil
}

func (r *Router) join(pattern string) string {
	if r.prefix == "" {
		return pattern
	}
	if pattern == "/" || pattern == "" {
		return r.prefix
	}
	return strings.TrimSuffix(r.prefix, "/") + "/" + strings.TrimPrefix(pattern, "/")
}
