package static

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/request"
	"github.com/dmitrymomot/ambient/core/response"
)

type spaConfig struct {
	indexFile    string
	notFoundFile string
	excludePaths []string
	serve        []Option
}

// SPAOption configures single page application serving.
type SPAOption func(*spaConfig)

// WithSPAIndex sets the index file served for client-side routes
// (default: "index.html").
func WithSPAIndex(indexFile string) SPAOption {
	return func(c *spaConfig) {
		c.indexFile = indexFile
	}
}

// WithNotFoundPage serves file with a 404 status instead of falling back to
// the index.
func WithNotFoundPage(file string) SPAOption {
	return func(c *spaConfig) {
		c.notFoundFile = file
	}
}

// WithExcludePaths sets path prefixes that get a plain 404 instead of the
// index fallback. Defaults to /api and /ws.
func WithExcludePaths(paths ...string) SPAOption {
	return func(c *spaConfig) {
		c.excludePaths = paths
	}
}

// WithServeOptions passes file serving options, such as WithMaxAge, to every
// file the SPA serves.
func WithServeOptions(opts ...Option) SPAOption {
	return func(c *spaConfig) {
		c.serve = append(c.serve, opts...)
	}
}

// SPA creates a handler for single page applications mounted on a "*" route.
// Existing files are served as-is, directories serve their index.html, and
// any other path falls back to the index file so the client can route it.
// Every file goes through ServeFile, so validators and ranges apply.
// Panics at startup if root, the index or the not-found page is missing.
func SPA(root string, opts ...SPAOption) handler.HandlerFunc {
	cfg := &spaConfig{
		indexFile:    "index.html",
		excludePaths: []string{"/api", "/ws"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	root = filepath.Clean(root)
	if err := validateStartup(root); err != nil {
		panic("static.SPA: " + err.Error())
	}
	mustBeFile(root, cfg.indexFile)
	if cfg.notFoundFile != "" {
		mustBeFile(root, cfg.notFoundFile)
	}

	serveOpts := append(slices.Clone(cfg.serve), WithBaseDir(root))

	return func(ctx context.Context) (any, error) {
		rel := path.Clean("/" + request.RouteParam(ctx, "*"))

		for _, prefix := range cfg.excludePaths {
			if rel == prefix || strings.HasPrefix(rel, strings.TrimSuffix(prefix, "/")+"/") {
				return nil, response.ErrNotFound
			}
		}

		if full, err := resolvePath(root, rel); err == nil {
			if info, err := os.Stat(full); err == nil {
				if !info.IsDir() {
					return ServeFile(ctx, rel, serveOpts...)
				}
				index := path.Join(rel, "index.html")
				if isFile(root, index) {
					return ServeFile(ctx, index, serveOpts...)
				}
			}
		}

		if cfg.notFoundFile != "" {
			b, err := ServeFile(ctx, cfg.notFoundFile, serveOpts...)
			if err != nil {
				return nil, err
			}
			if response.Status(ctx) == http.StatusOK {
				response.SetStatus(ctx, http.StatusNotFound)
			}
			return b, nil
		}

		return ServeFile(ctx, cfg.indexFile, serveOpts...)
	}
}

func isFile(root, rel string) bool {
	full, err := resolvePath(root, rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

func mustBeFile(root, rel string) {
	if !isFile(root, rel) {
		panic("static.SPA: file does not exist: " + filepath.Join(root, rel))
	}
}
