package body

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/dmitrymomot/ambient/core/response"
)

// Decompressor wraps a compressed stream with a reader that yields the
// decoded bytes.
type Decompressor func(r io.Reader) (io.ReadCloser, error)

var registry = struct {
	sync.RWMutex
	m map[string]Decompressor
}{
	m: map[string]Decompressor{
		"identity": identity,
		"gzip":     gunzip,
		"x-gzip":   gunzip,
		"deflate":  inflate,
		"br":       unbrotli,
		"zstd":     unzstd,
	},
}

// Register adds a decompressor for a Content-Encoding name. Names are case
// insensitive and cannot be registered twice.
func Register(name string, d Decompressor) error {
	if d == nil {
		return ErrNilDecompressor
	}
	name = strings.ToLower(strings.TrimSpace(name))

	registry.Lock()
	defer registry.Unlock()

	if _, ok := registry.m[name]; ok {
		return fmt.Errorf("%w: %q", ErrDecompressorExists, name)
	}
	registry.m[name] = d
	return nil
}

// Registered reports whether a decompressor exists for name.
func Registered(name string) bool {
	_, ok := lookupDecompressor(name)
	return ok
}

func lookupDecompressor(name string) (Decompressor, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.m[strings.ToLower(name)]
	return d, ok
}

// decompress applies the decoders for encodings in the order given. When
// limit is positive, every decoded stage is capped at limit bytes.
func decompress(encodings []string, raw []byte, limit int64) ([]byte, error) {
	out := raw
	for _, enc := range encodings {
		d, ok := lookupDecompressor(enc)
		if !ok {
			return nil, response.ErrUnsupportedMediaType.WithMessage(fmt.Sprintf("unsupported content encoding %q", enc))
		}

		rc, err := d(bytes.NewReader(out))
		if err != nil {
			return nil, response.ErrBadRequest.WithMessage(fmt.Sprintf("malformed %s body", enc)).WithError(err)
		}
		var src io.Reader = rc
		if limit > 0 {
			src = io.LimitReader(rc, limit+1)
		}
		out, err = io.ReadAll(src)
		rc.Close()
		if err != nil {
			return nil, response.ErrBadRequest.WithMessage(fmt.Sprintf("malformed %s body", enc)).WithError(err)
		}
		if limit > 0 && int64(len(out)) > limit {
			return nil, response.ErrRequestEntityTooLarge.WithMessage(fmt.Sprintf("decoded %s body exceeds %d bytes", enc, limit))
		}
	}
	return out, nil
}

func identity(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func gunzip(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func inflate(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}

func unbrotli(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

func unzstd(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}
