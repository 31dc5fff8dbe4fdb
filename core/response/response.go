package response

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/samber/lo"

	"github.com/dmitrymomot/ambient/core/cookie"
	"github.com/dmitrymomot/ambient/core/header"
	"github.com/dmitrymomot/ambient/core/scope"
)

// defaultStatus maps request methods to the status used for non-empty
// bodies when none is set.
var defaultStatus = map[string]int{
	http.MethodGet:    http.StatusOK,
	http.MethodHead:   http.StatusOK,
	http.MethodPost:   http.StatusCreated,
	http.MethodPut:    http.StatusCreated,
	http.MethodPatch:  http.StatusAccepted,
	http.MethodDelete: http.StatusAccepted,
}

// Response is a mutable response model: status (0 = unset), body, headers,
// cookies and the renderer that turns the body into bytes.
type Response struct {
	status   int
	body     Body
	header   http.Header
	cookies  []string
	renderer Renderer
	rendered bool
	flush    bool
}

// New creates a response for body. Error bodies get an ErrorRenderer, any
// other body the DefaultRenderer.
func New(body Body) *Response {
	r := &Response{header: make(http.Header)}
	return r.SetBody(body)
}

// WithRenderer replaces the renderer.
func (r *Response) WithRenderer(renderer Renderer) *Response {
	if renderer != nil {
		r.renderer = renderer
	}
	return r
}

// SetStatus sets an explicit status.
func (r *Response) SetStatus(code int) *Response {
	r.status = code
	return r
}

// Status returns the explicit status, or 0.
func (r *Response) Status() int { return r.status }

// SetBody replaces the body and selects the renderer for its kind.
func (r *Response) SetBody(body Body) *Response {
	r.body = body
	if body.Kind() == KindError {
		r.renderer = ErrorRenderer{}
	} else {
		r.renderer = DefaultRenderer{}
	}
	return r
}

// Body returns the body.
func (r *Response) Body() Body { return r.body }

// SetHeader sets a header on the response model.
func (r *Response) SetHeader(name, value string) *Response {
	r.header.Set(name, value)
	return r
}

// Header returns a header set on the response model.
func (r *Response) Header(name string) string { return r.header.Get(name) }

// SetContentType sets the Content-Type header.
func (r *Response) SetContentType(value string) *Response {
	return r.SetHeader("Content-Type", value)
}

// ContentType returns the Content-Type header.
func (r *Response) ContentType() string { return r.Header("Content-Type") }

// SetCookie adds a cookie rendered with the given options.
func (r *Response) SetCookie(name, value string, opts ...cookie.Option) *Response {
	return r.SetCookieRaw(cookie.Entry{Name: name, Value: value, Options: cookie.NewOptions(opts...)}.Line())
}

// SetCookieRaw adds a preformatted Set-Cookie line.
func (r *Response) SetCookieRaw(line string) *Response {
	r.cookies = append(r.cookies, line)
	return r
}

// Cookies returns the Set-Cookie lines of the response model.
func (r *Response) Cookies() []string { return r.cookies }

// Render runs the renderer. A response renders at most once.
func (r *Response) Render(ctx context.Context) ([]byte, error) {
	if r.rendered {
		return nil, ErrAlreadyRendered
	}
	r.rendered = true
	return r.renderer.Render(ctx, r)
}

// Send writes the response to the installed request's transport. Staged
// headers and cookies are merged under the model's own, the status is
// defaulted when unset, and the request is marked as responded. Sending twice
// fails with scope.ErrAlreadyResponded.
func (r *Response) Send(ctx context.Context) error {
	rc := scope.Must(ctx)
	if HasResponded(ctx) {
		return scope.ErrAlreadyResponded
	}

	r.mergeHeaders(ctx)

	if r.body.Kind() == KindStream {
		if !markResponded(ctx) {
			return scope.ErrAlreadyResponded
		}
		return r.sendStream(ctx, rc.ResponseWriter(), rc.Request())
	}

	out, err := r.Render(ctx)
	if err != nil {
		return err
	}
	if !markResponded(ctx) {
		return scope.ErrAlreadyResponded
	}
	r.mergeStatus(ctx, rc.Request().Method, len(out) > 0)

	w := rc.ResponseWriter()
	h := w.Header()
	for k, vs := range r.header {
		h[k] = vs
	}
	if bodyAllowed(r.status) {
		if len(out) > 0 || h.Get("Content-Length") == "" {
			h.Set("Content-Length", strconv.Itoa(len(out)))
		}
	} else {
		h.Del("Content-Length")
	}
	w.WriteHeader(r.status)

	if rc.Request().Method == http.MethodHead || len(out) == 0 || !bodyAllowed(r.status) {
		return nil
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteResponse, err)
	}
	return nil
}

func (r *Response) sendStream(ctx context.Context, w http.ResponseWriter, req *http.Request) error {
	stream := r.body.Reader()
	closeStream := sync.OnceFunc(func() {
		if c, ok := stream.(io.Closer); ok {
			_ = c.Close()
		}
	})
	defer closeStream()

	if r.status == 0 {
		r.status = Status(ctx)
	}
	if r.status == 0 {
		r.status = http.StatusOK
	}

	h := w.Header()
	for k, vs := range r.header {
		h[k] = vs
	}
	w.WriteHeader(r.status)

	if req.Method == http.MethodHead || stream == nil {
		return nil
	}

	// the client going away tears the stream down
	stop := context.AfterFunc(req.Context(), closeStream)
	defer stop()

	var dst io.Writer = w
	if f, ok := w.(http.Flusher); ok && r.flush {
		dst = flushWriter{Writer: w, f: f}
	}
	if _, err := io.Copy(dst, stream); err != nil {
		if req.Context().Err() != nil {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrWriteResponse, err)
	}
	return nil
}

// mergeHeaders overlays model headers on the staged ones and merges cookies:
// model cookies first, then staged cookies whose names the model does not set.
func (r *Response) mergeHeaders(ctx context.Context) {
	merged := header.Staged(ctx)
	for k, vs := range r.header {
		merged[k] = vs
	}

	own := lo.SliceToMap(r.cookies, func(line string) (string, struct{}) {
		return cookie.Name(line), struct{}{}
	})
	staged := lo.FilterMap(cookie.Staged(ctx), func(e cookie.Entry, _ int) (string, bool) {
		_, shadowed := own[e.Name]
		return e.Line(), !shadowed
	})

	merged.Del("Set-Cookie")
	if lines := append(append([]string(nil), r.cookies...), staged...); len(lines) > 0 {
		merged["Set-Cookie"] = lines
	}
	r.header = merged
}

func (r *Response) mergeStatus(ctx context.Context, method string, hasBody bool) {
	if r.status == 0 {
		r.status = Status(ctx)
	}
	if r.status != 0 {
		return
	}
	if !hasBody {
		r.status = http.StatusNoContent
		return
	}
	if code, ok := defaultStatus[method]; ok {
		r.status = code
		return
	}
	r.status = http.StatusOK
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

// flushWriter pushes every chunk to the client as soon as it is written.
type flushWriter struct {
	io.Writer
	f http.Flusher
}

func (w flushWriter) Write(p []byte) (int, error) {
	n, err := w.Writer.Write(p)
	w.f.Flush()
	return n, err
}
