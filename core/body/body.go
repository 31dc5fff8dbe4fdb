package body

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/dmitrymomot/ambient/core/request"
	"github.com/dmitrymomot/ambient/core/response"
	"github.com/dmitrymomot/ambient/core/scope"
)

// Content-Type fragments matched by the predicates. Matching is a case
// sensitive substring test on the raw header.
const (
	MIMEJSON       = "application/json"
	MIMEHTML       = "text/html"
	MIMEXML        = "text/xml"
	MIMEText       = "text/plain"
	MIMEBinary     = "application/octet-stream"
	MIMEFormData   = "multipart/form-data"
	MIMEURLEncoded = "application/x-www-form-urlencoded"
)

// compressedEncodings are the encodings IsCompressed recognizes.
var compressedEncodings = []string{"gzip", "x-gzip", "deflate", "br", "zstd"}

func contentIs(ctx context.Context, l *scope.Lazy[bool], fragment string) bool {
	v, _ := l.Get(func() (bool, error) {
		return strings.Contains(request.Header(ctx, "Content-Type"), fragment), nil
	})
	return v
}

// IsJSON reports whether the request body is JSON.
func IsJSON(ctx context.Context) bool { return contentIs(ctx, &request.Body(ctx).IsJSON, MIMEJSON) }

// IsHTML reports whether the request body is HTML.
func IsHTML(ctx context.Context) bool { return contentIs(ctx, &request.Body(ctx).IsHTML, MIMEHTML) }

// IsXML reports whether the request body is XML.
func IsXML(ctx context.Context) bool { return contentIs(ctx, &request.Body(ctx).IsXML, MIMEXML) }

// IsText reports whether the request body is plain text.
func IsText(ctx context.Context) bool { return contentIs(ctx, &request.Body(ctx).IsText, MIMEText) }

// IsBinary reports whether the request body is an octet stream.
func IsBinary(ctx context.Context) bool {
	return contentIs(ctx, &request.Body(ctx).IsBinary, MIMEBinary)
}

// IsFormData reports whether the request body is multipart form data.
func IsFormData(ctx context.Context) bool {
	return contentIs(ctx, &request.Body(ctx).IsFormData, MIMEFormData)
}

// IsURLEncoded reports whether the request body is a URL-encoded form.
func IsURLEncoded(ctx context.Context) bool {
	return contentIs(ctx, &request.Body(ctx).IsURLEncoded, MIMEURLEncoded)
}

// ContentEncodings returns the Content-Encoding header split on commas, with
// entries trimmed and empty ones dropped.
func ContentEncodings(ctx context.Context) []string {
	v, _ := request.Body(ctx).Encodings.Get(func() ([]string, error) {
		return lo.FilterMap(strings.Split(request.Header(ctx, "Content-Encoding"), ","), func(p string, _ int) (string, bool) {
			p = strings.TrimSpace(p)
			return p, p != ""
		}), nil
	})
	return v
}

// IsCompressed reports whether any content encoding is a compression codec.
func IsCompressed(ctx context.Context) bool {
	v, _ := request.Body(ctx).IsCompressed.Get(func() (bool, error) {
		return lo.SomeBy(ContentEncodings(ctx), func(enc string) bool {
			return lo.Contains(compressedEncodings, strings.ToLower(enc))
		}), nil
	})
	return v
}

// Bytes returns the raw body with every content encoding removed.
func Bytes(ctx context.Context) ([]byte, error) {
	return request.Body(ctx).Decoded.Get(func() ([]byte, error) {
		raw, err := request.RawBody(ctx)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, response.ErrRequestEntityTooLarge.WithError(err)
			}
			return nil, response.ErrBadRequest.WithError(err)
		}
		return decompress(ContentEncodings(ctx), raw, request.BodyLimit(ctx))
	})
}

// Parse decodes the body by content type. The result, or the failure, is
// computed once per request.
func Parse(ctx context.Context) (any, error) {
	return request.Body(ctx).Parsed.Get(func() (any, error) {
		payload, err := Bytes(ctx)
		if err != nil {
			return nil, err
		}

		switch {
		case IsJSON(ctx):
			return parseJSON(payload)
		case IsFormData(ctx):
			return parseMultipart(request.Header(ctx, "Content-Type"), string(payload))
		case IsURLEncoded(ctx):
			return parseURLEncoded(string(payload))
		default:
			return string(payload), nil
		}
	})
}

// Decode unmarshals a JSON body into v. Form bodies are decoded through
// their parsed field map, so JSON struct tags apply to both.
func Decode(ctx context.Context, v any) error {
	switch {
	case IsJSON(ctx):
		payload, err := Bytes(ctx)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(payload, v); err != nil {
			return response.ErrBadRequest.WithMessage("invalid JSON body").WithError(err)
		}
		return nil
	case IsFormData(ctx), IsURLEncoded(ctx):
		parsed, err := Parse(ctx)
		if err != nil {
			return err
		}
		b, err := json.Marshal(parsed)
		if err != nil {
			return response.ErrBadRequest.WithError(err)
		}
		if err := json.Unmarshal(b, v); err != nil {
			return response.ErrUnprocessableEntity.WithMessage("form fields do not match the target").WithError(err)
		}
		return nil
	default:
		return response.ErrUnsupportedMediaType
	}
}

// Lookup queries a JSON body with a gjson path, such as "user.name" or
// "items.#.id".
func Lookup(ctx context.Context, path string) (gjson.Result, error) {
	if !IsJSON(ctx) {
		return gjson.Result{}, response.ErrUnsupportedMediaType
	}
	payload, err := Bytes(ctx)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(payload) {
		return gjson.Result{}, response.ErrBadRequest.WithMessage("invalid JSON body")
	}
	return gjson.GetBytes(payload, path), nil
}
