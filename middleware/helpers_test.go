package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/ambient/core/dispatcher"
	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/router"
)

func text(s string) handler.HandlerFunc {
	return func(context.Context) (any, error) { return s, nil }
}

// serve routes GET / to h behind the given middlewares and runs req.
func serve(h handler.HandlerFunc, req *http.Request, mws ...handler.Middleware) *httptest.ResponseRecorder {
	r := router.New()
	r.Get("/", h)
	return do(dispatcher.New(r, dispatcher.WithMiddleware(mws...)), req)
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
