// Package handler defines the request handler contract and its composition.
//
// A handler reads the request through the accessor packages and returns a
// value, a response or an error:
//
//	func show(ctx context.Context) (any, error) {
//		id := request.RouteParam(ctx, "id")
//		if id == "" {
//			return nil, response.ErrBadRequest
//		}
//		return map[string]string{"id": id}, nil
//	}
//
// Sequence runs a route's handlers in order, letting every handler but the
// last pass the request on by failing. Chain applies middleware, the first
// one outermost:
//
//	h := handler.Chain(handler.Sequence(auth, show), logging, requestID)
//
// Call recovers panics into *PanicError so a failing handler never takes the
// process down.
package handler
