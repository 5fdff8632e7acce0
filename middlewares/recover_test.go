package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fnhttp/internal"
	"github.com/dmitrymomot/fnhttp/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	boom := func(internal.Context) (any, error) {
		panic("boom")
	}

	t.Run("panic becomes a 500", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, boom, req, internal.WithMiddleware(middlewares.Recover()))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"Internal Server Error"}}`, rec.Body.String())
	})

	t.Run("error handler sees the panic", func(t *testing.T) {
		t.Parallel()

		var got *middlewares.PanicError
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		serve(t, boom, req,
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithErrorHandler(func(_ internal.Context, err error) error {
				got, _ = middlewares.AsPanicError(err)
				return err
			}),
		)

		require.NotNil(t, got)
		assert.Equal(t, "boom", got.Value)
		assert.NotEmpty(t, got.Stack)
	})

	t.Run("stack can be disabled", func(t *testing.T) {
		t.Parallel()

		var got *middlewares.PanicError
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		serve(t, boom, req,
			internal.WithMiddleware(middlewares.Recover(middlewares.WithRecoverDisablePrintStack())),
			internal.WithErrorHandler(func(_ internal.Context, err error) error {
				got, _ = middlewares.AsPanicError(err)
				return err
			}),
		)

		require.NotNil(t, got)
		assert.Nil(t, got.Stack)
	})

	t.Run("stack size is bounded", func(t *testing.T) {
		t.Parallel()

		var got *middlewares.PanicError
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		serve(t, boom, req,
			internal.WithMiddleware(middlewares.Recover(middlewares.WithRecoverStackSize(64))),
			internal.WithErrorHandler(func(_ internal.Context, err error) error {
				got, _ = middlewares.AsPanicError(err)
				return err
			}),
		)

		require.NotNil(t, got)
		assert.LessOrEqual(t, len(got.Stack), 64)
	})

	t.Run("errors pass through", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, func(internal.Context) (any, error) {
			return nil, internal.ErrBadRequest("bad")
		}, req, internal.WithMiddleware(middlewares.Recover()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("panic with an error value", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("nil map")

		var got error
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		serve(t, func(internal.Context) (any, error) { panic(cause) }, req,
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithErrorHandler(func(_ internal.Context, err error) error {
				got = err
				return err
			}),
		)

		assert.True(t, middlewares.IsPanicError(got))
		assert.Equal(t, http.StatusInternalServerError, internal.StatusOf(got))
	})
}
