package response

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ambient/core/request"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// toHTTPError converts any error to an HTTPError. The original error is kept
// as the cause.
func toHTTPError(err error) HTTPError {
	if err == nil {
		return ErrInternalServerError
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	return NewHTTPError(status, "").WithError(err)
}

// ErrorRenderer renders error bodies negotiated against the Accept header:
// JSON when accepted, else HTML, else plain text, else JSON. It always sets
// the response status to the error's status.
type ErrorRenderer struct {
	// Page renders the HTML variant. Defaults to ErrorPage.
	Page func(ErrorBody) templ.Component
}

// Render implements Renderer.
func (er ErrorRenderer) Render(ctx context.Context, r *Response) ([]byte, error) {
	e := r.Body().HTTPError()
	if r.Body().Kind() != KindError {
		e = ErrInternalServerError
	}
	data := e.Body()
	r.SetStatus(data.StatusCode)

	switch {
	case request.AcceptsJSON(ctx):
		return er.renderJSON(r, data)
	case request.AcceptsHTML(ctx):
		return er.renderHTML(ctx, r, data)
	case request.AcceptsText(ctx):
		return er.renderText(r, data)
	default:
		return er.renderJSON(r, data)
	}
}

func (ErrorRenderer) renderJSON(r *Response, data ErrorBody) ([]byte, error) {
	r.SetContentType(ContentTypeJSON)
	return marshalJSON(data)
}

func (ErrorRenderer) renderText(r *Response, data ErrorBody) ([]byte, error) {
	r.SetContentType(ContentTypeText)
	return []byte(strconv.Itoa(data.StatusCode) + " " + data.Error + "\n" + data.Message), nil
}

func (er ErrorRenderer) renderHTML(ctx context.Context, r *Response, data ErrorBody) ([]byte, error) {
	page := er.Page
	if page == nil {
		page = ErrorPage
	}

	var buf bytes.Buffer
	if err := page(data).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("templ component render error: %w", err)
	}
	r.SetContentType(ContentTypeHTML)
	return buf.Bytes(), nil
}
