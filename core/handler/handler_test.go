package handler_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ambient/core/handler"
	"github.com/dmitrymomot/ambient/core/scope"
)

func value(v any) handler.HandlerFunc {
	return func(context.Context) (any, error) { return v, nil }
}

func failing(err error) handler.HandlerFunc {
	return func(context.Context) (any, error) { return nil, err }
}

func installed(t *testing.T) (context.Context, *scope.Request) {
	t.Helper()
	rc := scope.NewRequest(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil), nil)
	t.Cleanup(func() { scope.Clear(rc) })
	return scope.Install(context.Background(), rc), rc
}

func TestSequence(t *testing.T) {
	t.Parallel()

	errDecline := errors.New("decline")

	tests := []struct {
		name     string
		handlers []handler.HandlerFunc
		want     any
		wantErr  error
	}{
		{name: "single", handlers: []handler.HandlerFunc{value("a")}, want: "a"},
		{name: "first_success_wins", handlers: []handler.HandlerFunc{value("a"), value("b")}, want: "a"},
		{name: "error_continues", handlers: []handler.HandlerFunc{failing(errDecline), value("b")}, want: "b"},
		{name: "error_value_continues", handlers: []handler.HandlerFunc{value(errDecline), value("b")}, want: "b"},
		{name: "last_error_is_final", handlers: []handler.HandlerFunc{failing(errDecline), failing(errDecline)}, wantErr: errDecline},
		{name: "last_error_value_is_final", handlers: []handler.HandlerFunc{value("x"), value(errDecline)}, want: "x"},
		{name: "empty", handlers: nil, wantErr: handler.ErrEmptyChain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _ := installed(t)
			got, err := handler.Sequence(tt.handlers...)(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSequence_PanicContinues(t *testing.T) {
	t.Parallel()

	ctx, _ := installed(t)
	boom := func(context.Context) (any, error) { panic("boom") }

	got, err := handler.Sequence(boom, value("recovered"))(ctx)
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)

	_, err = handler.Sequence(value(errors.New("x")), boom)(ctx)
	var pe *handler.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestSequence_KeepsRequestAcrossHandlers(t *testing.T) {
	t.Parallel()

	ctx, rc := installed(t)

	var seen []*scope.Request
	record := func(fail bool) handler.HandlerFunc {
		return func(ctx context.Context) (any, error) {
			seen = append(seen, scope.Must(ctx))
			if fail {
				panic("pass")
			}
			return "done", nil
		}
	}

	got, err := handler.Sequence(record(true), record(true), record(false))(ctx)
	require.NoError(t, err)
	assert.Equal(t, "done", got)
	require.Len(t, seen, 3)
	for _, s := range seen {
		assert.Same(t, rc, s)
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) handler.Middleware {
		return func(next handler.HandlerFunc) handler.HandlerFunc {
			return func(ctx context.Context) (any, error) {
				order = append(order, name+":before")
				res, err := next(ctx)
				order = append(order, name+":after")
				return res, err
			}
		}
	}

	h := handler.Chain(func(context.Context) (any, error) {
		order = append(order, "handler")
		return "ok", nil
	}, mw("outer"), mw("inner"))

	got, err := h(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}, order)
}

func TestCall_RecoversErrorPanic(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	_, err := handler.Call(context.Background(), func(context.Context) (any, error) { panic(cause) })

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "panic: cause", err.Error())
}
