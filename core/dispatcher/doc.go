// Package dispatcher turns the route table into an http.Handler.
//
// For every request the dispatcher looks the route up, installs a
// scope.Request into the request context, stages default headers, runs the
// route's handler sequence wrapped in the configured middlewares and converts
// whatever it produced into exactly one response:
//
//	r := router.New()
//	r.Get("/users/{id}", getUser)
//
//	d := dispatcher.New(r,
//		dispatcher.WithLogger(log),
//		dispatcher.WithMiddleware(middleware.RequestID(), middleware.Logging(log)),
//		dispatcher.WithMaxBodySize(1<<20),
//	)
//	http.ListenAndServe(":8080", d)
//
// Unknown routes answer 404. Errors and panics answer with the error's
// status, 500 when it has none. A panic escaping the pipeline itself is only
// logged.
package dispatcher
