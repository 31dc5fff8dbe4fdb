package response

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// TemplRenderer renders a templ component with the request context. The
// response body is ignored.
type TemplRenderer struct {
	Component templ.Component
}

// Render implements Renderer.
func (t TemplRenderer) Render(ctx context.Context, r *Response) ([]byte, error) {
	if t.Component == nil {
		return nil, fmt.Errorf("%w: nil templ component", ErrUnsupportedBody)
	}
	var buf bytes.Buffer
	if err := t.Component.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("templ component render error: %w", err)
	}
	if r.ContentType() == "" {
		r.SetContentType(ContentTypeHTML + "; charset=utf-8")
	}
	return buf.Bytes(), nil
}

// Templ creates an HTML response rendered from component. Components can
// read request-scoped values through the context they are rendered with.
func Templ(component templ.Component) *Response {
	return New(Empty()).WithRenderer(TemplRenderer{Component: component})
}
