package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fnhttp/internal"
	"github.com/dmitrymomot/fnhttp/middlewares"
	"github.com/dmitrymomot/fnhttp/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	echo := func(c internal.Context) (any, error) {
		return middlewares.GetRequestID(c), nil
	}

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, echo, req, internal.WithMiddleware(middlewares.RequestID()))

		id := rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, `{"data":"`+id+`"}`, rec.Body.String())
	})

	t.Run("reuses the upstream id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := serve(t, echo, req, internal.WithMiddleware(middlewares.RequestID()))

		assert.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("header order wins", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-1")
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := serve(t, echo, req, internal.WithMiddleware(middlewares.RequestID()))

		assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom options", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")
		rec := serve(t, echo, req, internal.WithMiddleware(middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)))

		assert.Equal(t, "fixed", rec.Header().Get("X-Trace"))
		assert.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("empty outside the middleware", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := serve(t, echo, req)

		assert.Equal(t, `{"data":""}`, rec.Body.String())
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf}, middlewares.RequestIDExtractor())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	serve(t, func(c internal.Context) (any, error) {
		c.LogInfo("handled", slog.String("k", "v"))
		return nil, nil
	}, req, internal.WithCustomLogger(log), internal.WithMiddleware(middlewares.RequestID()))

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"msg":"handled"`)
	assert.Contains(t, buf.String(), `"method":"GET"`)
	assert.Contains(t, buf.String(), `"path":"/"`)
}
