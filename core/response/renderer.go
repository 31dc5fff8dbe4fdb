package response

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Content types set by the renderers when none is set on the response.
const (
	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html"
)

// Renderer turns a response body into bytes. It may set headers on r, such
// as the content type, and is called at most once per response.
type Renderer interface {
	Render(ctx context.Context, r *Response) ([]byte, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, r *Response) ([]byte, error)

// Render implements Renderer.
func (f RendererFunc) Render(ctx context.Context, r *Response) ([]byte, error) {
	return f(ctx, r)
}

// DefaultRenderer renders text bodies as text/plain, HTML bodies as
// text/html and JSON bodies as
// application/json, leaving a content type already set on the response
// untouched. Error bodies are delegated to ErrorRenderer.
type DefaultRenderer struct{}

// Render implements Renderer.
func (DefaultRenderer) Render(ctx context.Context, r *Response) ([]byte, error) {
	b := r.Body()
	switch b.Kind() {
	case KindEmpty:
		return nil, nil
	case KindText:
		if r.ContentType() == "" {
			r.SetContentType(ContentTypeText)
		}
		return []byte(b.Text()), nil
	case KindHTML:
		if r.ContentType() == "" {
			r.SetContentType(ContentTypeHTML)
		}
		return []byte(b.Text()), nil
	case KindJSON:
		out, err := marshalJSON(b.Value())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedBody, err)
		}
		if r.ContentType() == "" {
			r.SetContentType(ContentTypeJSON)
		}
		return out, nil
	case KindError:
		return ErrorRenderer{}.Render(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %s body cannot be rendered", ErrUnsupportedBody, b.Kind())
	}
}

// marshalJSON encodes v without HTML escaping and without the trailing
// newline json.Encoder appends.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
