// Package router is the route table consulted by the dispatcher. It maps a
// method and path to the ordered handler sequence registered for the route
// and the path parameters captured from the path.
//
//	r := router.New()
//	r.Get("/users/{id}", loadFromCache, loadFromDB)
//	r.Get("/files/*", static.Dir("./public"))
//	r.With(middleware.Guard(isAdmin)).Delete("/users/{id}", deleteUser)
//
// Patterns are matched segment by segment. A "{name}" segment captures one
// non-empty segment, a trailing "*" captures the rest of the path. A name
// used twice in one pattern collects every capture in order. When several
// routes match, literal segments win over params and params over "*".
// HEAD requests fall back to GET routes.
package router
