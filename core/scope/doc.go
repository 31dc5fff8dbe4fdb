// Package scope binds the state of one in-flight HTTP request to a
// context.Context so that helpers deep in handler code can read headers and
// stage response state without threading the request through every call.
//
// The dispatcher creates a Request, installs it, and clears it once the
// response is sent:
//
//	rc := scope.NewRequest(w, r, params)
//	ctx := scope.Install(r.Context(), rc)
//	defer scope.Clear(rc)
//
// Accessor packages reach the request through scope.Must(ctx), which panics
// with ErrNotInRequestScope when nothing is installed or the scope has ended.
// Work that continues on an unrelated context re-binds the captured request
// with scope.Restore.
//
// Each Request owns a Store, a fixed set of namespaces (body, cookies,
// set-cookies, set-headers, status, response, search-params, accept,
// authorization). Packages keep their namespace state in their own typed
// struct and fetch it with Get:
//
//	type bodyCache struct {
//		parsed scope.Lazy[any]
//	}
//
//	func (c *bodyCache) Reset() { c.parsed.Reset() }
//
//	cache := scope.Get[bodyCache](rc.Store(), scope.NamespaceBody)
//
// Store.Clear empties a namespace in place through its Reset method, so
// pointers handed out earlier stay valid.
package scope
