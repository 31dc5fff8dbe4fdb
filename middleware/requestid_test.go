package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ambient/core/logger"
	"github.com/dmitrymomot/ambient/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates_uuid", func(t *testing.T) {
		t.Parallel()

		var seen string
		h := func(ctx context.Context) (any, error) {
			seen, _ = middleware.GetRequestID(ctx)
			return "ok", nil
		}
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil), middleware.RequestID())

		id := w.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		assert.Equal(t, id, seen)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("ignores_client_id_by_default", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-id")
		w := serve(text("ok"), req, middleware.RequestID())

		assert.NotEqual(t, "client-id", w.Header().Get("X-Request-ID"))
	})

	t.Run("use_existing", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-id")
		w := serve(text("ok"), req, middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true}))

		assert.Equal(t, "client-id", w.Header().Get("X-Request-ID"))
	})

	t.Run("custom_header_and_generator", func(t *testing.T) {
		t.Parallel()

		mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			HeaderName: "X-Trace",
			Generator:  func() string { return "fixed" },
		})
		w := serve(text("ok"), httptest.NewRequest(http.MethodGet, "/", nil), mw)

		assert.Equal(t, "fixed", w.Header().Get("X-Trace"))
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()

		var found bool
		h := func(ctx context.Context) (any, error) {
			_, found = middleware.GetRequestID(ctx)
			return "ok", nil
		}
		mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Skip: func(context.Context) bool { return true },
		})
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil), mw)

		assert.False(t, found)
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	h := func(ctx context.Context) (any, error) {
		log.InfoContext(ctx, "inside")
		return "ok", nil
	}
	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil), middleware.RequestID())

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, w.Header().Get("X-Request-ID"), record["request_id"])

	_, ok := middleware.RequestIDExtractor(context.Background())
	assert.False(t, ok)
}
