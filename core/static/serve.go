package static

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/lo"

	"github.com/dmitrymomot/ambient/core/header"
	"github.com/dmitrymomot/ambient/core/request"
	"github.com/dmitrymomot/ambient/core/response"
)

const defaultContentType = "application/octet-stream"

// ServeFile evaluates the conditional and range headers of the installed
// request against the file at path, stages status and headers, and returns
// the body to send. Failures are response.HTTPError values.
func ServeFile(ctx context.Context, path string, opts ...Option) (response.Body, error) {
	o := newOptions(opts)

	full, err := resolvePath(o.baseDir, path)
	if err != nil {
		return response.Empty(), response.ErrNotFound.WithError(err)
	}

	info, err := os.Stat(full)
	if err != nil {
		return response.Empty(), response.ErrNotFound.WithError(err)
	}
	if info.IsDir() {
		return response.Empty(), response.ErrNotFound
	}

	response.SetStatus(ctx, http.StatusOK)

	etag := ETag(info, o.weak)
	lastModified := LastModified(info)
	h := request.Headers(ctx)

	if isNotModified(etag, lastModified, h.Get("If-None-Match"), h.Get("If-Modified-Since")) {
		response.SetStatus(ctx, http.StatusNotModified)
		return response.Empty(), nil
	}

	size := info.Size()
	start, end := int64(0), size-1
	ranged := false

	if rng := h.Get("Range"); rng != "" {
		s, e, ok := parseRange(rng, size)
		if !ok {
			return response.Empty(), response.ErrRequestedRangeNotSatisfiable
		}

		ifRange := h.Get("If-Range")
		var ifRangeTag, ifRangeDate string
		if len(ifRange) > 0 && ifRange[0] == '"' {
			ifRangeTag = ifRange
		} else {
			ifRangeDate = ifRange
		}

		if ifRange == "" || isNotModified(etag, lastModified, ifRangeTag, ifRangeDate) {
			start, end, ranged = s, e, true
		}
	}

	length := size
	if ranged {
		length = end - start + 1
	}

	head := request.Method(ctx) == http.MethodHead

	// Nothing is staged until the file is open.
	var f *os.File
	if !head {
		if f, err = os.Open(full); err != nil {
			return response.Empty(), response.ErrNotFound.WithError(err)
		}
	}

	if ranged {
		header.Set(ctx, "Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
		response.SetStatus(ctx, http.StatusPartialContent)
	}
	header.Set(ctx, "Accept-Ranges", "bytes")
	header.Set(ctx, "ETag", etag)
	header.Set(ctx, "Last-Modified", lastModified.Format(http.TimeFormat))
	if o.cache {
		header.SetCacheControl(ctx, header.Public, header.MaxAge(o.maxAge))
	}
	header.SetContentType(ctx, contentType(full))
	if o.attachment {
		header.Set(ctx, "Content-Disposition", response.ContentDisposition(lo.Ternary(o.filename != "", o.filename, filepath.Base(full))))
	}
	header.Set(ctx, "Content-Length", strconv.FormatInt(length, 10))
	for k, v := range o.headers {
		header.Set(ctx, k, v)
	}

	if head {
		return response.Empty(), nil
	}
	if !ranged {
		return response.Stream(f), nil
	}
	return response.Stream(sectionReader{
		Reader: io.NewSectionReader(f, start, length),
		Closer: f,
	}), nil
}

type sectionReader struct {
	io.Reader
	io.Closer
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return defaultContentType
}
