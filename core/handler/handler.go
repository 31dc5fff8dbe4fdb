package handler

import (
	"context"
	"errors"
)

// ErrEmptyChain is returned by a Sequence with no handlers.
var ErrEmptyChain = errors.New("empty handler chain")

// HandlerFunc handles a request installed in ctx. It returns a plain value,
// a *response.Response or an error; the dispatcher converts any of them into
// the final response.
type HandlerFunc func(ctx context.Context) (any, error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain wraps h with middlewares. The first middleware is the outermost.
func Chain(h HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
