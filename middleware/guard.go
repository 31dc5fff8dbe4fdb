package middleware

import (
	"context"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/response"
)

// GuardFunc decides whether a request may proceed.
type GuardFunc func(ctx context.Context) (bool, error)

// Guard runs guards in order before the wrapped handler. A denying guard
// answers 401, a failing guard answers with its error. Both are returned as
// responses rather than errors, so a guarded handler inside a sequence stops
// the sequence instead of passing the request on.
func Guard(guards ...GuardFunc) handler.Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx context.Context) (any, error) {
			for _, g := range guards {
				ok, err := g(ctx)
				if err != nil {
					return response.New(response.Error(err)), nil
				}
				if !ok {
					return response.New(response.Error(response.ErrUnauthorized)), nil
				}
			}
			return next(ctx)
		}
	}
}
