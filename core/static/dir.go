package static

import (
	"context"
	"path/filepath"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/request"
)

// Dir creates a handler that serves files below root using the "*" route
// param as the relative path. Directories are never listed.
// Panics at startup if root is not an existing directory.
func Dir(root string, opts ...Option) handler.HandlerFunc {
	root = filepath.Clean(root)
	if err := validateStartup(root); err != nil {
		panic("static.Dir: " + err.Error())
	}

	opts = append(opts, WithBaseDir(root))

	return func(ctx context.Context) (any, error) {
		body, err := ServeFile(ctx, request.RouteParam(ctx, "*"), opts...)
		if err != nil {
			return nil, err
		}
		return body, nil
	}
}
