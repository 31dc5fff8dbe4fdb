package response

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/dmitrymomot/ambient/core/scope"
)

type statusState struct {
	code atomic.Int32
}

func (s *statusState) Reset() { s.code.Store(0) }

type responseState struct {
	responded atomic.Bool
}

func (s *responseState) Reset() { s.responded.Store(false) }

func responded(ctx context.Context) *responseState {
	return scope.Get[responseState](scope.Must(ctx).Store(), scope.NamespaceResponse)
}

// SetStatus stages the response status. A status set on the response model
// takes precedence.
func SetStatus(ctx context.Context, code int) {
	scope.Get[statusState](scope.Must(ctx).Store(), scope.NamespaceStatus).code.Store(int32(code))
}

// Status returns the staged status, or 0 when none is staged.
func Status(ctx context.Context) int {
	return int(scope.Get[statusState](scope.Must(ctx).Store(), scope.NamespaceStatus).code.Load())
}

// HasResponded reports whether a response was sent, or the raw writer was
// taken over, for the installed request.
func HasResponded(ctx context.Context) bool {
	return responded(ctx).responded.Load()
}

// Raw returns the transport response writer. Unless passthrough is set, the
// caller takes over the response and the dispatcher will not send one.
func Raw(ctx context.Context, passthrough bool) http.ResponseWriter {
	w := scope.Must(ctx).ResponseWriter()
	if !passthrough {
		responded(ctx).responded.Store(true)
	}
	return w
}

// markResponded flips the responded flag. It returns false when the flag was
// already set.
func markResponded(ctx context.Context) bool {
	return responded(ctx).responded.CompareAndSwap(false, true)
}
