package body_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ambient/core/body"
	"github.com/dmitrymomot/ambient/core/response"
	"github.com/dmitrymomot/ambient/core/scope"
)

const boundary = "--------------------------038816476509113988597354"

func newContext(t *testing.T, contentType string, payload []byte, encoding string) context.Context {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if encoding != "" {
		r.Header.Set("Content-Encoding", encoding)
	}
	rc := scope.NewRequest(httptest.NewRecorder(), r, nil)
	t.Cleanup(func() { scope.Clear(rc) })
	return scope.Install(r.Context(), rc)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr response.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected an HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.StatusCode())
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        string
	}{
		{contentType: "application/json", want: "json"},
		{contentType: "application/json; charset=utf-8", want: "json"},
		{contentType: "text/xml", want: "xml"},
		{contentType: "text/html", want: "html"},
		{contentType: "text/plain", want: "text"},
		{contentType: "application/octet-stream", want: "binary"},
		{contentType: "multipart/form-data", want: "formdata"},
		{contentType: "application/x-www-form-urlencoded", want: "urlencoded"},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			ctx := newContext(t, tt.contentType, nil, "")
			got := map[string]bool{
				"json":       body.IsJSON(ctx),
				"xml":        body.IsXML(ctx),
				"html":       body.IsHTML(ctx),
				"text":       body.IsText(ctx),
				"binary":     body.IsBinary(ctx),
				"formdata":   body.IsFormData(ctx),
				"urlencoded": body.IsURLEncoded(ctx),
			}
			for name, v := range got {
				assert.Equal(t, name == tt.want, v, name)
			}
		})
	}
}

func TestPredicates_Cached(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, "application/json", nil, "")
	require.True(t, body.IsJSON(ctx))

	scope.Must(ctx).Request().Header.Set("Content-Type", "text/plain")
	assert.True(t, body.IsJSON(ctx))
	assert.True(t, body.IsText(ctx))
}

func TestContentEncodings(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, "", nil, "gzip, , br ")
	assert.Equal(t, []string{"gzip", "br"}, body.ContentEncodings(ctx))
	assert.True(t, body.IsCompressed(ctx))

	ctx = newContext(t, "", nil, "identity")
	assert.Equal(t, []string{"identity"}, body.ContentEncodings(ctx))
	assert.False(t, body.IsCompressed(ctx))

	ctx = newContext(t, "", nil, "")
	assert.Empty(t, body.ContentEncodings(ctx))
	assert.False(t, body.IsCompressed(ctx))
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, "application/json", []byte(`{"test":"object","a":123}`), "")

	first, err := body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"test": "object", "a": float64(123)}, first)

	second, err := body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%p", first), fmt.Sprintf("%p", second))
}

func TestParse_InvalidJSON(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, "application/json", []byte(`{"test":`), "")
	_, err := body.Parse(ctx)
	requireStatus(t, err, http.StatusBadRequest)

	_, again := body.Parse(ctx)
	assert.Equal(t, err, again)
}

func TestParse_Multipart(t *testing.T) {
	t.Parallel()

	payload := "--" + boundary + "\n" +
		"Content-Disposition: form-data; name=\"x2[]\"\n\n22\n" +
		"--" + boundary + "\n" +
		"Content-Disposition: form-data; name=\"x3\"\n\n33\n" +
		"--" + boundary + "\n" +
		"Content-Disposition: form-data; name=\"x2[]\"\n\n44%25\n" +
		"--" + boundary + "--\n"

	ctx := newContext(t, "multipart/form-data; boundary="+boundary, []byte(payload), "")
	got, err := body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x2[]": "22\n44%25", "x3": "33"}, got)
}

func TestParse_MultipartJSONPart(t *testing.T) {
	t.Parallel()

	payload := "--" + boundary + "\r\n" +
		"Content-Disposition: form-data; name=\"x3\"\r\n\r\n33\r\n" +
		"--" + boundary + "\r\n" +
		"Content-Type: application/json\r\n" +
		"Content-Disposition: form-data; name=\"x4\"\r\n\r\n{ \"a\": \"b\" }\r\n" +
		"--" + boundary + "--\r\n"

	ctx := newContext(t, "multipart/form-data; boundary="+boundary, []byte(payload), "")
	got, err := body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x3": "33", "x4": map[string]any{"a": "b"}}, got)
}

func TestParse_MultipartErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		payload     string
	}{
		{
			name:        "missing_boundary",
			contentType: "multipart/form-data",
			payload:     "--x\nContent-Disposition: form-data; name=\"a\"\n\n1\n--x--",
		},
		{
			name:        "missing_name",
			contentType: "multipart/form-data; boundary=x",
			payload:     "--x\nContent-Disposition: form-data; filename=\nfoo\n--x--",
		},
		{
			name:        "invalid_json_part",
			contentType: "multipart/form-data; boundary=x",
			payload:     "--x\nContent-Type: application/json\nContent-Disposition: form-data; name=\"a\"\n\n{oops\n--x--",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := newContext(t, tt.contentType, []byte(tt.payload), "")
			_, err := body.Parse(ctx)
			requireStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestParse_URLEncoded(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, "application/x-www-form-urlencoded", []byte("t1=11&t2=2&a[]=1&a[]=2&t1=12\n"), "")
	got, err := body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"t1": "12", "t2": "2", "a[]": []string{"1", "2"}}, got)

	ctx = newContext(t, "application/x-www-form-urlencoded", []byte("bad=%zz"), "")
	_, err = body.Parse(ctx)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestParse_Text(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, "text/plain", []byte("just text"), "")
	got, err := body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, "just text", got)

	ctx = newContext(t, "", nil, "")
	got, err = body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func compress(t *testing.T, encoding string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch encoding {
	case "gzip", "x-gzip":
		w = gzip.NewWriter(&buf)
	case "deflate":
		w = zlib.NewWriter(&buf)
	case "br":
		w = brotli.NewWriter(&buf)
	case "zstd":
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	default:
		t.Fatalf("unknown encoding %s", encoding)
	}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestParse_Compressed(t *testing.T) {
	t.Parallel()

	data := []byte(`{"compressed":true}`)

	for _, enc := range []string{"gzip", "x-gzip", "deflate", "br", "zstd"} {
		t.Run(enc, func(t *testing.T) {
			t.Parallel()

			ctx := newContext(t, "application/json", compress(t, enc, data), enc)
			got, err := body.Parse(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"compressed": true}, got)
		})
	}

	t.Run("identity", func(t *testing.T) {
		t.Parallel()

		ctx := newContext(t, "application/json", data, "identity")
		got, err := body.Parse(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"compressed": true}, got)
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()

		ctx := newContext(t, "application/json", data, "compress")
		_, err := body.Parse(ctx)
		requireStatus(t, err, http.StatusUnsupportedMediaType)
	})

	t.Run("decoded_past_limit", func(t *testing.T) {
		t.Parallel()

		for _, enc := range []string{"gzip", "deflate", "br", "zstd"} {
			ctx := newContext(t, "text/plain", compress(t, enc, bytes.Repeat([]byte("a"), 4096)), enc)
			scope.Must(ctx).SetBodyLimit(1024)

			_, err := body.Bytes(ctx)
			requireStatus(t, err, http.StatusRequestEntityTooLarge)
		}
	})

	t.Run("decoded_at_limit", func(t *testing.T) {
		t.Parallel()

		ctx := newContext(t, "text/plain", compress(t, "gzip", bytes.Repeat([]byte("a"), 1024)), "gzip")
		scope.Must(ctx).SetBodyLimit(1024)

		got, err := body.Bytes(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1024)
	})

	t.Run("corrupt", func(t *testing.T) {
		t.Parallel()

		ctx := newContext(t, "application/json", data, "gzip")
		_, err := body.Parse(ctx)
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, body.Register("gzip", func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }), body.ErrDecompressorExists)
	require.ErrorIs(t, body.Register("upper-test", nil), body.ErrNilDecompressor)

	upper := func(r io.Reader) (io.ReadCloser, error) {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(strings.NewReader(strings.ToUpper(string(b)))), nil
	}
	require.NoError(t, body.Register("Upper-Test", upper))
	assert.True(t, body.Registered("upper-test"))

	ctx := newContext(t, "text/plain", []byte("shout"), "upper-test")
	got, err := body.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SHOUT", got)
}

type signup struct {
	Name string   `json:"name"`
	Tags []string `json:"tags[]"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		ctx := newContext(t, "application/json", []byte(`{"name":"ann","tags[]":["a"]}`), "")

		var s signup
		require.NoError(t, body.Decode(ctx, &s))
		assert.Equal(t, signup{Name: "ann", Tags: []string{"a"}}, s)
	})

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		ctx := newContext(t, "application/x-www-form-urlencoded", []byte("name=bob&tags[]=x&tags[]=y"), "")

		var s signup
		require.NoError(t, body.Decode(ctx, &s))
		assert.Equal(t, signup{Name: "bob", Tags: []string{"x", "y"}}, s)
	})

	t.Run("invalid_json", func(t *testing.T) {
		t.Parallel()
		ctx := newContext(t, "application/json", []byte(`[1,`), "")

		var s signup
		requireStatus(t, body.Decode(ctx, &s), http.StatusBadRequest)
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()
		ctx := newContext(t, "text/plain", []byte("x"), "")

		var s signup
		requireStatus(t, body.Decode(ctx, &s), http.StatusUnsupportedMediaType)
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, "application/json", []byte(`{"user":{"name":"ann"},"items":[{"id":1},{"id":2}]}`), "")

	name, err := body.Lookup(ctx, "user.name")
	require.NoError(t, err)
	assert.Equal(t, "ann", name.String())

	ids, err := body.Lookup(ctx, "items.#.id")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, ids.Raw)

	missing, err := body.Lookup(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, missing.Exists())

	ctx = newContext(t, "text/plain", []byte("x"), "")
	_, err = body.Lookup(ctx, "a")
	requireStatus(t, err, http.StatusUnsupportedMediaType)
}
