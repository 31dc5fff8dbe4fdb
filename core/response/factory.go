package response

import (
	"context"

	"github.com/a-h/templ"
)

// From converts a handler result into a response: a *Response is returned
// as-is, a templ component renders as HTML, anything else becomes the body of a new response. It returns nil
// when the request has already been responded to, and ErrUnsupportedBody for
// values with no body representation.
func From(ctx context.Context, v any) (*Response, error) {
	if HasResponded(ctx) {
		return nil, nil
	}
	if r, ok := v.(*Response); ok {
		if r == nil {
			return New(Empty()), nil
		}
		return r, nil
	}

	if c, ok := v.(templ.Component); ok {
		return Templ(c), nil
	}

	body, err := BodyOf(v)
	if err != nil {
		return nil, err
	}
	return New(body), nil
}
