// Package static serves files with conditional and byte-range request support.
//
// ServeFile resolves a path against a base directory, evaluates If-None-Match,
// If-Modified-Since, Range and If-Range, stages the response status and
// headers on the installed request and returns the body to send:
//
//	func download(ctx context.Context) (any, error) {
//		return static.ServeFile(ctx, request.RouteParam(ctx, "name"),
//			static.WithBaseDir("./public"),
//			static.WithMaxAge(time.Hour),
//		)
//	}
//
// Outcomes:
//
//   - 304 with an empty body when the client's validator still matches
//   - 206 with Content-Range for a satisfiable single byte range
//   - 416 (response.ErrRequestedRangeNotSatisfiable) for an invalid range
//   - 404 (response.ErrNotFound) for missing files, directories and paths
//     escaping the base directory
//   - 200 with the whole file otherwise
//
// HEAD requests get the headers and an empty body. Validators are a strong
// ETag built from the inode, size and modification time, and Last-Modified.
//
// Dir wraps ServeFile in a handler serving the "*" route param from a
// directory checked at startup.
package static
