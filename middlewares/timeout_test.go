package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fnhttp/internal"
	"github.com/dmitrymomot/fnhttp/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast functions pass through", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, func(internal.Context) (any, error) {
			return "ok", nil
		}, req, internal.WithMiddleware(middlewares.Timeout(time.Second)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"data":"ok"}`, rec.Body.String())
	})

	t.Run("slow functions get 503", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		t.Cleanup(func() { close(release) })

		var got error
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, func(internal.Context) (any, error) {
			<-release
			return "late", nil
		}, req,
			internal.WithMiddleware(middlewares.Timeout(10*time.Millisecond)),
			internal.WithErrorHandler(func(_ internal.Context, err error) error {
				got = err
				return err
			}),
		)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"request timeout"}}`, rec.Body.String())

		te, ok := middlewares.AsTimeoutError(got)
		require.True(t, ok)
		assert.Equal(t, 10*time.Millisecond, te.Duration)
	})

	t.Run("timeout context outside the middleware", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, func(c internal.Context) (any, error) {
			_, hasDeadline := middlewares.GetTimeoutContext(c).Deadline()
			return hasDeadline, nil
		}, req)

		assert.Equal(t, `{"data":false}`, rec.Body.String())
	})
}
