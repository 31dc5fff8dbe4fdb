// Package cookie stages outgoing Set-Cookie entries on the request installed
// in a context. Entries are kept per name in insertion order: setting a name
// twice replaces the earlier entry in place, and Remove drops it entirely.
//
// The dispatcher (through response.Send) renders staged entries into one
// Set-Cookie header line each:
//
//	cookie.Set(ctx, "session", id, cookie.WithHTTPOnly(true), cookie.WithPath("/"))
//	cookie.Set(ctx, "theme", "dark", cookie.WithMaxAge(150), cookie.WithSecure(true))
//	// theme=dark; Max-Age=150; Secure
//
// Attributes render in a fixed order: Max-Age, Expires, Domain, Path, then
// the Secure and HttpOnly flags, then SameSite. Max-Age is in seconds.
//
// Config loads default attributes from the environment:
//
//	cfg := config.MustLoad[cookie.Config]()
//	cookie.Set(ctx, "session", id, cfg.Options()...)
package cookie
