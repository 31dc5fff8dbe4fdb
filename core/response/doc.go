// Package response assembles and sends the single HTTP response of a request.
//
// A Response holds a status (0 = unset), a Body, headers, cookies and a
// Renderer. Bodies are a tagged union built with Empty, Text, JSON, Stream and
// Error, or mapped from an arbitrary handler result with BodyOf:
//
//	resp, err := response.From(ctx, map[string]any{"id": 1})
//	if err != nil {
//		return err
//	}
//	return resp.SetCookie("seen", "1", cookie.WithMaxAge(3600)).Send(ctx)
//
// Send merges the headers staged with package header under the model's own
// headers and appends staged cookies whose names the model does not set. When
// no status is set, the staged status (SetStatus) is used, then a default by
// method: GET and HEAD 200, POST and PUT 201, PATCH and DELETE 202, anything
// else 200. Empty bodies default to 204.
//
// Stream bodies are piped without a Content-Length and closed when the client
// goes away. HEAD requests discard the stream.
//
// Error bodies render through ErrorRenderer, negotiated by Accept: JSON, then
// HTML (a templ component), then plain text, with JSON as the fallback. The
// JSON shape is {"statusCode":404,"error":"Not Found","message":"..."}.
//
// A request is sent at most once. A second Send, or a Send after Raw took over
// the writer, fails with scope.ErrAlreadyResponded.
package response
